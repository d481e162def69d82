package scene

import "github.com/go-gl/mathgl/mgl32"

// Transform is a node's local transform in decomposed translation/rotation/
// scale form. The decomposed representation lets downstream consumers (the
// editor, the degenerate-scale check) distinguish the three parts, which a
// raw matrix cannot.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

// IdentityTransform returns the identity transform.
func IdentityTransform() Transform {
	return Transform{
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// Matrix composes the transform as translation * rotation * scale: scale is
// applied first, then rotation, then translation.
func (t Transform) Matrix() mgl32.Mat4 {
	return mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z()).
		Mul4(t.Rotation.Mat4()).
		Mul4(mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z()))
}

// Degenerate reports whether the scale collapses the transform onto a plane
// or line. Such a transform is non-invertible, so the normal matrix cannot be
// computed; the frame updater prunes the node's subtree while this holds.
func (t Transform) Degenerate() bool {
	return t.Scale.X()*t.Scale.Y()*t.Scale.Z() == 0
}

// DecomposeMatrix splits an explicit 4x4 node matrix into translation,
// rotation and per-axis scale. Translation comes from the last column and
// scale from the column magnitudes of the upper 3x3 block. When that block
// has negative determinant the transform mirrors, and a quaternion cannot
// represent the reflection; one axis of both the rotation block and the
// scale is negated so the remaining rotation is proper (determinant +1)
// while recomposition reproduces the input.
func DecomposeMatrix(m mgl32.Mat4) Transform {
	position := mgl32.Vec3{m.At(0, 3), m.At(1, 3), m.At(2, 3)}

	linear := m.Mat3()
	scale := mgl32.Vec3{
		linear.Col(0).Len(),
		linear.Col(1).Len(),
		linear.Col(2).Len(),
	}
	if linear.Det() < 0 {
		scale[0] = -scale[0]
	}

	rotation := mgl32.Ident3()
	if scale.X() != 0 && scale.Y() != 0 && scale.Z() != 0 {
		c0 := linear.Col(0).Mul(1 / scale.X())
		c1 := linear.Col(1).Mul(1 / scale.Y())
		c2 := linear.Col(2).Mul(1 / scale.Z())
		rotation = mgl32.Mat3{
			c0.X(), c0.Y(), c0.Z(),
			c1.X(), c1.Y(), c1.Z(),
			c2.X(), c2.Y(), c2.Z(),
		}
	}

	return Transform{
		Position: position,
		Rotation: mgl32.Mat4ToQuat(rotation.Mat4()).Normalize(),
		Scale:    scale,
	}
}
