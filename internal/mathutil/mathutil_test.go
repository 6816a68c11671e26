package mathutil

import (
	"math"
	"testing"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestMat4MulVec4Translate(t *testing.T) {
	m := Translate(Vec3{1, 2, 3})
	got := m.MulVec4(Vec3{4, 5, 6}.Point())
	want := Vec4{5, 7, 9, 1}
	if got != want {
		t.Fatalf("MulVec4() = %v, want %v", got, want)
	}
}

func TestMat4MulIdentity(t *testing.T) {
	m := Mat4Mul(Translate(Vec3{1, 0, 0}), Translate(Vec3{0, 2, 0}))
	if Mat4Mul(m, Mat4Identity()) != m {
		t.Fatal("multiplying by identity changed the matrix")
	}
	p := m.MulPoint(Vec3{1, 1, 1})
	if p != (Vec3{2, 3, 1}) {
		t.Fatalf("MulPoint() = %v, want [2 3 1]", p)
	}
}

func TestPerspectiveFovMapsNearAndFar(t *testing.T) {
	const near, far = 0.1, 100.0
	p := PerspectiveFov(Deg2Rad(90), 800, 800, near, far)

	n := p.MulVec4(Vec3{0, 0, -near}.Point()).PerspectiveDivide()
	if !approx(n[2], -1) {
		t.Errorf("near plane z = %v, want -1", n[2])
	}
	f := p.MulVec4(Vec3{0, 0, -far}.Point()).PerspectiveDivide()
	if math.Abs(f[2]-1) > 1e-6 {
		t.Errorf("far plane z = %v, want 1", f[2])
	}
	// 90° fov: a point on the 45° line lands on the top edge.
	e := p.MulVec4(Vec3{0, 5, -5}.Point()).PerspectiveDivide()
	if !approx(e[1], 1) {
		t.Errorf("edge y = %v, want 1", e[1])
	}
}

func TestPerspectiveDivideZeroW(t *testing.T) {
	v := Vec4{1, 0, -1, 0}.PerspectiveDivide()
	if !math.IsInf(v[0], 1) || !math.IsNaN(v[1]) {
		t.Fatalf("PerspectiveDivide() = %v, want [+Inf NaN -Inf]", v)
	}
}

func TestRotXYZRowsOrthonormal(t *testing.T) {
	r := RotXYZ(Vec3{30, -45, 10})
	for i := 0; i < 3; i++ {
		if l := r.Row(i).Len(); !approx(l, 1) {
			t.Errorf("row %d length = %v, want 1", i, l)
		}
	}
	if d := r.Row(0).Dot(r.Row(1)); !approx(d, 0) {
		t.Errorf("row0·row1 = %v, want 0", d)
	}
	id := Mat3Mul(r, r.Transpose())
	for i, want := range Mat3Identity() {
		if !approx(id[i], want) {
			t.Fatalf("R×Rᵀ = %v, want identity", id)
		}
	}
}

func TestVec3Cross(t *testing.T) {
	got := Vec3{1, 0, 0}.Cross(Vec3{0, 1, 0})
	if got != (Vec3{0, 0, 1}) {
		t.Fatalf("Cross() = %v, want [0 0 1]", got)
	}
	if n := (Vec3{}).Normalize(); n != (Vec3{}) {
		t.Fatalf("Normalize(zero) = %v, want zero", n)
	}
}
