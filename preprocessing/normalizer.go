package preprocessing

import (
	"fmt"
	"math"

	"github.com/scitext/scitext/core/model"
	"github.com/scitext/scitext/core/parallel"
	"github.com/scitext/scitext/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Norm は正規化の種類を表す
type Norm string

const (
	// NormL1 は各行を絶対値の合計で割る
	NormL1 Norm = "l1"
	// NormL2 は各行をユークリッドノルムで割る
	NormL2 Norm = "l2"
	// NormMax は各行を絶対値の最大値で割る
	NormMax Norm = "max"
)

// parallelThreshold はこの行数を超えた場合に行の正規化を並列化する
const parallelThreshold = 1000

// Normalizer はscikit-learn互換の行正規化変換器
// 各サンプル（行）を単位ノルムにスケーリングする
type Normalizer struct {
	model.BaseEstimator

	// Norm は正規化の種類 (デフォルト: l2)
	Norm Norm

	// NFeatures は特徴量の数
	NFeatures int
}

// NewNormalizer は新しいNormalizerを作成する
//
// パラメータ:
//   - norm: 正規化の種類 (l1, l2, max)
//
// 戻り値:
//   - *Normalizer: 新しいNormalizerインスタンス
//   - error: normが不正な場合のエラー
//
// 使用例:
//
//	normalizer, err := preprocessing.NewNormalizer(preprocessing.NormL2)
//	err = normalizer.Fit(X)
//	XNorm, err := normalizer.Transform(X)
func NewNormalizer(norm Norm) (*Normalizer, error) {
	switch norm {
	case NormL1, NormL2, NormMax:
	default:
		return nil, errors.NewValueError("NewNormalizer",
			fmt.Sprintf("unknown norm %q: must be one of l1, l2, max", norm))
	}
	return &Normalizer{Norm: norm}, nil
}

// NewNormalizerDefault はデフォルト設定(l2ノルム)でNormalizerを作成する
func NewNormalizerDefault() *Normalizer {
	return &Normalizer{Norm: NormL2}
}

// Fit は特徴量の数を記録する
// Normalizerはステートレスであり、各行は独立に正規化される
//
// パラメータ:
//   - X: 訓練データ (n_samples × n_features の行列)
//
// 戻り値:
//   - error: エラーが発生した場合
func (n *Normalizer) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("Normalizer.Fit", "empty data", errors.ErrEmptyData)
	}

	n.NFeatures = c
	n.SetFitted()
	return nil
}

// Transform は各行を単位ノルムにスケーリングする
// ノルムが0の行はゼロ除算を避けるためスケーリングしない
//
// パラメータ:
//   - X: 変換するデータ
//
// 戻り値:
//   - mat.Matrix: 正規化されたデータ
//   - error: エラーが発生した場合
func (n *Normalizer) Transform(X mat.Matrix) (mat.Matrix, error) {
	if !n.IsFitted() {
		return nil, errors.NewNotFittedError("Normalizer", "Transform")
	}

	r, c := X.Dims()
	if c != n.NFeatures {
		return nil, errors.NewDimensionError("Normalizer.Transform", n.NFeatures, c, 1)
	}

	result := mat.NewDense(r, c, nil)

	// 各行を独立に正規化する（行数が多い場合は並列化）
	parallel.ParallelizeWithThreshold(r, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			norm := n.rowNorm(X, i, c)

			for j := 0; j < c; j++ {
				v := X.At(i, j)
				// ノルムが0の行はそのままにする
				if norm != 0 {
					v /= norm
				}
				result.Set(i, j, v)
			}
		}
	})

	return result, nil
}

// rowNorm は指定した行のノルムを計算する
func (n *Normalizer) rowNorm(X mat.Matrix, i, c int) float64 {
	var norm float64
	switch n.Norm {
	case NormL1:
		for j := 0; j < c; j++ {
			norm += math.Abs(X.At(i, j))
		}
	case NormL2:
		for j := 0; j < c; j++ {
			v := X.At(i, j)
			norm += v * v
		}
		norm = math.Sqrt(norm)
	case NormMax:
		for j := 0; j < c; j++ {
			if v := math.Abs(X.At(i, j)); v > norm {
				norm = v
			}
		}
	}
	return norm
}

// FitTransform は訓練データで学習し、同じデータを変換する
//
// パラメータ:
//   - X: 訓練・変換するデータ
//
// 戻り値:
//   - mat.Matrix: 正規化されたデータ
//   - error: エラーが発生した場合
func (n *Normalizer) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := n.Fit(X); err != nil {
		return nil, err
	}
	return n.Transform(X)
}

// GetParams は変換器のパラメータを取得する
func (n *Normalizer) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"norm": string(n.Norm),
	}
}

// String は変換器の文字列表現を返す
func (n *Normalizer) String() string {
	if !n.IsFitted() {
		return fmt.Sprintf("Normalizer(norm=%s)", n.Norm)
	}
	return fmt.Sprintf("Normalizer(norm=%s, n_features=%d)", n.Norm, n.NFeatures)
}
