package vmath

// AABB is an axis-aligned bounding box in world space
type AABB struct {
	Min, Max Vec3
}

// EmptyAABB returns an inverted box that any Extend replaces
func EmptyAABB() AABB {
	const big = 1e30
	return AABB{
		Min: Vec3{big, big, big},
		Max: Vec3{-big, -big, -big},
	}
}

// Extend grows the box to contain p
func (b AABB) Extend(p Vec3) AABB {
	return AABB{
		Min: Vec3{min(b.Min.X, p.X), min(b.Min.Y, p.Y), min(b.Min.Z, p.Z)},
		Max: Vec3{max(b.Max.X, p.X), max(b.Max.Y, p.Y), max(b.Max.Z, p.Z)},
	}
}

// Empty reports whether no point was ever added
func (b AABB) Empty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// Translated returns the box moved by d
func (b AABB) Translated(d Vec3) AABB {
	return AABB{Min: V3Add(b.Min, d), Max: V3Add(b.Max, d)}
}

// Intersects reports overlap on all three axes, touching faces count
func (b AABB) Intersects(o AABB) bool {
	if b.Empty() || o.Empty() {
		return false
	}
	return b.Min.X <= o.Max.X && b.Max.X >= o.Min.X &&
		b.Min.Y <= o.Max.Y && b.Max.Y >= o.Min.Y &&
		b.Min.Z <= o.Max.Z && b.Max.Z >= o.Min.Z
}

// Contains reports whether p lies inside or on the box
func (b AABB) Contains(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}
