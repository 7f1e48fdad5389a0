// Package errors はプロジェクト全体のエラーハンドリングと警告システムを提供します。
// 致命的でない問題は警告チャネルで通知し、エラーは構造化された型で返します。
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	グローバル警告ハンドリング
//
// ===========================================================================
var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		// デフォルトのハンドラは標準エラー出力にログを出す
		log.Printf("xaigo-Warning: %v\n", w)
	}
	// zerologロガー（循環importを避けるため遅延初期化）
	zerologWarnFunc func(warning error)
)

// SetWarningHandler はxaigoライブラリ全体の警告ハンドラを設定します。
// これにより、LargeFeatureSpaceWarningなどのカスタム警告の処理方法を制御できます。
//
// 例:
//
//	errors.SetWarningHandler(func(w error) {
//	    // 警告を無視する
//	})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc はzerolog警告関数を設定します（循環importを避けるため）。
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn は警告を発生させます。
// 警告は純粋な観測シグナルであり、呼び出し元の制御フローを変更しません。
// zerologが利用可能な場合は構造化ログとして出力し、そうでなければ従来のハンドラを使用します。
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	// zerologが設定されている場合は優先的に使用
	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}

	// フォールバック: 従来のハンドラ
	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	説明可能性パイプライン特有の警告型
//
// ===========================================================================

// LargeFeatureSpaceWarning はセグメンテーションが生成した解釈可能特徴の数が
// 大きすぎる場合に発生する警告です。サロゲートモデルの学習が非常に遅くなるか、
// メモリ不足になる可能性があります。
type LargeFeatureSpaceWarning struct {
	NumFeatures int
	Threshold   int
}

func (w *LargeFeatureSpaceWarning) Error() string {
	return fmt.Sprintf("one or several inputs got a number of interpretable features %d > %d. "+
		"This can be very slow or lead to OOM issues when fitting the interpretable model. "+
		"Consider a segmenter which selects fewer features.", w.NumFeatures, w.Threshold)
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (w *LargeFeatureSpaceWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Int("num_features", w.NumFeatures).
		Int("threshold", w.Threshold).
		Str("type", "LargeFeatureSpaceWarning")
}

// NewLargeFeatureSpaceWarning は新しいLargeFeatureSpaceWarningを作成します。
func NewLargeFeatureSpaceWarning(numFeatures, threshold int) *LargeFeatureSpaceWarning {
	return &LargeFeatureSpaceWarning{NumFeatures: numFeatures, Threshold: threshold}
}

// UnbatchedInferenceWarning は摂動サンプル数が多いにもかかわらず推論の
// サブバッチサイズが設定されていない場合に発生する警告です。
// モデルに一度で大量の予測を要求するとOOMの危険があります。
type UnbatchedInferenceWarning struct {
	NbSamples int
}

func (w *UnbatchedInferenceWarning) Error() string {
	return fmt.Sprintf("nb_samples is %d (>= 500) and batch_perturbed_samples is unset. "+
		"The model will be asked for all predictions one shot, which can lead to OOM issues. "+
		"Set batch_perturbed_samples to avoid it.", w.NbSamples)
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (w *UnbatchedInferenceWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Int("nb_samples", w.NbSamples).
		Str("type", "UnbatchedInferenceWarning")
}

// NewUnbatchedInferenceWarning は新しいUnbatchedInferenceWarningを作成します。
func NewUnbatchedInferenceWarning(nbSamples int) *UnbatchedInferenceWarning {
	return &UnbatchedInferenceWarning{NbSamples: nbSamples}
}

// DegenerateWeightsWarning は類似度カーネルが返した重みの合計がほぼゼロの
// 場合に発生する警告です。kernel_widthが入力のスケールに対して小さすぎると、
// サロゲートの学習が退化します。数値結果は変更されません。
type DegenerateWeightsWarning struct {
	WeightSum float64
	NbSamples int
}

func (w *DegenerateWeightsWarning) Error() string {
	return fmt.Sprintf("similarity weights sum to %g over %d perturbed samples. "+
		"The surrogate fit is likely degenerate; consider a larger kernel_width.", w.WeightSum, w.NbSamples)
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (w *DegenerateWeightsWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Float64("weight_sum", w.WeightSum).
		Int("nb_samples", w.NbSamples).
		Str("type", "DegenerateWeightsWarning")
}

// NewDegenerateWeightsWarning は新しいDegenerateWeightsWarningを作成します。
func NewDegenerateWeightsWarning(weightSum float64, nbSamples int) *DegenerateWeightsWarning {
	return &DegenerateWeightsWarning{WeightSum: weightSum, NbSamples: nbSamples}
}

// ===========================================================================
//
//	構造化されたエラー型
//
// ===========================================================================

// NotFittedError はモデルが未学習の状態で `Predict` や `Coef` を呼び出した場合のエラーです。
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("xaigo: %s: this model is not fitted yet. Call Fit() before using %s()", e.ModelName, e.Method)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError は新しいNotFittedErrorを作成し、スタックトレースを付与します。
func NewNotFittedError(modelName, method string) error {
	err := &NotFittedError{ModelName: modelName, Method: method}
	return errors.WithStack(err)
}

// DimensionError は入力データの次元が期待値と異なる場合のエラーです。
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns/features/channels
}

func (e *DimensionError) Error() string {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("xaigo: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("axis_name", axisName).
		Str("type", "DimensionError")
}

// NewDimensionError は新しいDimensionErrorを作成し、スタックトレースを付与します。
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// ValidationError は構築時パラメータの検証に失敗した場合のエラーです。
// 不正なdistance_modeなど、explainの実行前に検出される設定エラーを示します。
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("xaigo: validation failed for parameter '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ValidationError")
}

// NewValidationError は新しいValidationErrorを作成し、スタックトレースを付与します。
func NewValidationError(param, reason string, value interface{}) error {
	err := &ValidationError{ParamName: param, Reason: reason, Value: value}
	return errors.WithStack(err)
}

// ValueError は引数の値が不適切または不正な場合に発生するエラーです。
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("xaigo: %s: %s", e.Op, e.Message)
}

// NewValueError は新しいValueErrorを作成し、スタックトレースを付与します。
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// ModelError は外部コラボレータ（ブラックボックスモデル、セグメンタ、
// サロゲートフィッタ）から伝播したエラーです。操作コンテキスト付きで
// そのまま呼び出し元へ返されます。
type ModelError struct {
	Op   string
	Kind string
	Err  error
}

func (e *ModelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("xaigo: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("xaigo: %s: %s", e.Op, e.Kind)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

// NewModelError は新しいModelErrorを作成し、スタックトレースを付与します。
func NewModelError(op, kind string, err error) error {
	modelErr := &ModelError{Op: op, Kind: kind, Err: err}
	return errors.WithStack(modelErr)
}

// ===========================================================================
//
//	cockroachdb/errors ラッパー関数
//
// ===========================================================================

// Is はエラーが特定のターゲットエラーかどうかを判定します。
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As はエラーが特定の型にキャスト可能かどうかを判定します。
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap は既存のエラーをメッセージ付きでラップします。
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf は既存のエラーをフォーマット文字列でラップします。
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New は新しいエラーを作成します。
func New(message string) error {
	return errors.New(message)
}

// Newf は新しいフォーマット済みエラーを作成します。
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack はエラーにスタックトレースを付与します。
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	共通エラー変数
//
// ===========================================================================

var (
	// ErrEmptyData は空のデータが渡された場合のエラーです。
	ErrEmptyData = New("empty data")

	// ErrSingularMatrix は特異行列の場合のエラーです。
	ErrSingularMatrix = New("singular matrix")
)
