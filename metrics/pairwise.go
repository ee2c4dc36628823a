package metrics

import (
	"math"

	"github.com/scitext/scitext/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// LinearKernel はXの各行とYの各行の内積を計算する
//
// パラメータ:
//   - X: n_samples_X × n_features の行列
//   - Y: n_samples_Y × n_features の行列
//
// 戻り値:
//   - *mat.Dense: n_samples_X × n_samples_Y のカーネル行列
//   - error: エラーが発生した場合
func LinearKernel(X, Y mat.Matrix) (*mat.Dense, error) {
	rX, cX := X.Dims()
	rY, cY := Y.Dims()

	if rX == 0 || cX == 0 || rY == 0 || cY == 0 {
		return nil, errors.NewValueError("LinearKernel", "empty matrix")
	}
	if cX != cY {
		return nil, errors.NewDimensionError("LinearKernel", cX, cY, 1)
	}

	result := mat.NewDense(rX, rY, nil)
	for i := 0; i < rX; i++ {
		for k := 0; k < rY; k++ {
			var dot float64
			for j := 0; j < cX; j++ {
				dot += X.At(i, j) * Y.At(k, j)
			}
			result.Set(i, k, dot)
		}
	}

	return result, nil
}

// CosineSimilarity はXの各行とYの各行のコサイン類似度を計算する
// TF-IDF重み付けされた文書ベクトル間の類似度計算に使用できる
//
// ゼロベクトルとの類似度は定義できないため0とし、
// UndefinedMetricWarningを発生させる
//
// パラメータ:
//   - X: n_samples_X × n_features の行列
//   - Y: n_samples_Y × n_features の行列
//
// 戻り値:
//   - *mat.Dense: n_samples_X × n_samples_Y の類似度行列
//   - error: エラーが発生した場合
func CosineSimilarity(X, Y mat.Matrix) (*mat.Dense, error) {
	kernel, err := LinearKernel(X, Y)
	if err != nil {
		return nil, err
	}

	rX, cX := X.Dims()
	rY, _ := Y.Dims()

	normsX := rowNorms(X, rX, cX)
	normsY := rowNorms(Y, rY, cX)

	warned := false
	for i := 0; i < rX; i++ {
		for k := 0; k < rY; k++ {
			denom := normsX[i] * normsY[k]
			if denom == 0 {
				if !warned {
					errors.Warn(errors.NewUndefinedMetricWarning(
						"cosine_similarity", "zero vector", 0))
					warned = true
				}
				kernel.Set(i, k, 0)
				continue
			}
			kernel.Set(i, k, kernel.At(i, k)/denom)
		}
	}

	return kernel, nil
}

// rowNorms は各行のユークリッドノルムを計算する
func rowNorms(X mat.Matrix, r, c int) []float64 {
	norms := make([]float64, r)
	for i := 0; i < r; i++ {
		var sum float64
		for j := 0; j < c; j++ {
			v := X.At(i, j)
			sum += v * v
		}
		norms[i] = math.Sqrt(sum)
	}
	return norms
}
