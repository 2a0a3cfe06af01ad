package mesh

import "gonum.org/v1/gonum/mat"

// OrthoProj computes the orthogonal projection of x0 onto the affine subspace
// defined by Ax=b which is the intersection of affine hyperplanes that
// constitute the rows of A with associated shifts in b.  The equation is:
//
//	proj = [I - A^T * (A * A^T)^-1 * A]*x0 + A^T * (A * A^T)^-1 * b
//
// where x0 is the point being projected and I is the identity matrix.  A is
// an m by n matrix where m <= n. if m == n, the returned result is the
// solution to the system A*x0=b
func OrthoProj(x0 []float64, A, b *mat.Dense) []float64 {
	x := mat.NewDense(len(x0), 1, append([]float64{}, x0...))

	m, n := A.Dims()
	if m == n {
		proj := &mat.Dense{}
		if err := proj.Solve(A, b); err != nil {
			panic(err.Error())
		}
		out := make([]float64, len(x0))
		mat.Col(out, 0, proj)
		return out
	}

	AAtrans := &mat.Dense{}
	AAtrans.Mul(A, A.T())

	// B = A^T * (A*A^T)^-1
	inv := &mat.Dense{}
	if err := inv.Inverse(AAtrans); err != nil {
		panic(err.Error())
	}
	B := &mat.Dense{}
	B.Mul(A.T(), inv)

	n, _ = B.Dims()

	tmp := &mat.Dense{}
	tmp.Mul(B, A)
	tmp.Sub(eye(n), tmp)
	res := &mat.Dense{}
	res.Mul(tmp, x)

	tmp2 := &mat.Dense{}
	tmp2.Mul(B, b)
	res.Add(res, tmp2)

	out := make([]float64, len(x0))
	mat.Col(out, 0, res)
	return out
}

func eye(n int) *mat.Dense {
	m := mat.NewDense(n, n, nil)

	for i := 0; i < n; i++ {
		m.Set(i, i, 1)
	}
	return m
}

// Nearest returns the nearest point to x0 that doesn't violate constraints
// in the equation Ax <= b.
func Nearest(x0 []float64, A, b *mat.Dense) []float64 {
	proj := x0
	var badA *mat.Dense
	var badb *mat.Dense
	for {
		Aviol, bviol := mostviolated(proj, A, b)

		if Aviol == nil { // projection is complete
			break
		} else {
			if badA == nil {
				badA, badb = Aviol, bviol
			} else {
				tmpA, tmpb := badA, badb
				badA, badb = &mat.Dense{}, &mat.Dense{}
				badA.Stack(tmpA, Aviol)
				badb.Stack(tmpb, bviol)
			}
		}

		proj = OrthoProj(x0, badA, badb)

		// we have projected to a single point
		if m, n := badA.Dims(); m == n {
			break
		}
	}
	return proj
}

// mostviolated returns the most violated constraint in the system Ax <= b.
// Aviol and bviol each have one row and len(x0) columns.  It returns
// nil, nil if x0 violates no constraints.
func mostviolated(x0 []float64, A, b *mat.Dense) (Aviol, bviol *mat.Dense) {
	eps := 1e-10

	ax := &mat.Dense{}
	xm := mat.NewDense(len(x0), 1, append([]float64{}, x0...))
	ax.Mul(A, xm)

	m, _ := ax.Dims()
	worst := eps
	worstRow := -1
	for i := 0; i < m; i++ {
		if diff := ax.At(i, 0) - b.At(i, 0); diff > worst {
			worst = diff
			worstRow = i
		}
	}
	if worstRow == -1 {
		return nil, nil
	}

	row := make([]float64, len(x0))
	mat.Row(row, worstRow, A)
	return mat.NewDense(1, len(x0), row), mat.NewDense(1, 1, []float64{b.At(worstRow, 0)})
}
