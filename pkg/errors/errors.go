// Package errors はプロジェクト全体のエラーハンドリングと警告システムを提供します。
// scikit-learnの警告・例外システムにインスパイアされており、構造化されたエラー情報を提供します。
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
		log.Printf("framelearn-Warning: %v\n", w)
	}
	// zerologロガー（循環importを避けるため遅延初期化）
	zerologWarnFunc func(warning error)
)

// SetWarningHandler はライブラリ全体の警告ハンドラを設定します。
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
// zerologが利用可能な場合は構造化ログとして出力し、そうでなければ従来のハンドラを使用します。
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}

	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	警告型
//
// ===========================================================================

// DataConversionWarning はデータの型が暗黙的に変換された場合に発生する警告です。
type DataConversionWarning struct {
	FromType string
	ToType   string
	Reason   string
}

func (w *DataConversionWarning) Error() string {
	return fmt.Sprintf("data converted from %s to %s. Reason: %s", w.FromType, w.ToType, w.Reason)
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (w *DataConversionWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("from_type", w.FromType).
		Str("to_type", w.ToType).
		Str("reason", w.Reason).
		Str("type", "DataConversionWarning")
}

// NewDataConversionWarning は新しいDataConversionWarningを作成します。
func NewDataConversionWarning(from, to, reason string) *DataConversionWarning {
	return &DataConversionWarning{FromType: from, ToType: to, Reason: reason}
}

// ===========================================================================
//
//	構造化されたエラー型
//
// ===========================================================================

// NotFittedError はモデルが未学習の状態で `Predict` や `Transform` を呼び出した場合のエラーです。
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("framelearn: %s: this model is not fitted yet. Call Fit() before using %s()", e.ModelName, e.Method)
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
	Axis     int // 0 for rows, 1 for columns/features
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("framelearn: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName(e.Axis), e.Expected, e.Got)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("axis_name", axisName(e.Axis)).
		Str("type", "DimensionError")
}

// NewDimensionError は新しいDimensionErrorを作成し、スタックトレースを付与します。
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

func axisName(axis int) string {
	if axis == 0 {
		return "rows"
	}
	return "features"
}

// ValidationError は入力パラメータの検証に失敗した場合のエラーです。
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("framelearn: validation failed for parameter '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
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
	return fmt.Sprintf("framelearn: %s: %s", e.Op, e.Message)
}

// NewValueError は新しいValueErrorを作成し、スタックトレースを付与します。
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// ModelError は機械学習モデルに関する一般的なエラーです。
type ModelError struct {
	Op   string
	Kind string
	Err  error
}

func (e *ModelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("framelearn: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("framelearn: %s: %s", e.Op, e.Kind)
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
//	アダプタ固有のエラー型
//
// ===========================================================================

// AttributeError は要求されたメンバーがラップ対象のEstimatorに存在しない場合のエラーです。
type AttributeError struct {
	Owner string // Estimatorの型名
	Name  string // 要求されたメンバー名
}

func (e *AttributeError) Error() string {
	return fmt.Sprintf("framelearn: %s has no attribute '%s'", e.Owner, e.Name)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *AttributeError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("owner", e.Owner).
		Str("attribute", e.Name).
		Str("type", "AttributeError")
}

// NewAttributeError は新しいAttributeErrorを作成し、スタックトレースを付与します。
func NewAttributeError(owner, name string) error {
	return errors.WithStack(&AttributeError{Owner: owner, Name: name})
}

// IntrospectionError はメソッドの宣言から呼び出し規約を判定できなかったことを示します。
// 分類時にローカルで回収され、呼び出し元へは返されません。
type IntrospectionError struct {
	Owner  string
	Method string
	Reason string
}

func (e *IntrospectionError) Error() string {
	return fmt.Sprintf("framelearn: cannot introspect %s.%s: %s", e.Owner, e.Method, e.Reason)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *IntrospectionError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("owner", e.Owner).
		Str("method", e.Method).
		Str("reason", e.Reason).
		Str("type", "IntrospectionError")
}

// NewIntrospectionError は新しいIntrospectionErrorを作成します。
func NewIntrospectionError(owner, method, reason string) error {
	return errors.WithStack(&IntrospectionError{Owner: owner, Method: method, Reason: reason})
}

// ShapeMismatchError は生の結果の形状が呼び出し時に捕捉した入力の
// 行インデックス・列ラベルと一致しない場合のエラーです。
// 列ラベルを誤って付け直すことはせず、必ずこのエラーを返します。
type ShapeMismatchError struct {
	Op       string
	Expected []int // 期待される形状 (rows) または (rows, cols)
	Got      []int // 実際の形状
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("framelearn: %s: result shape %v does not match labels of shape %v", e.Op, e.Got, e.Expected)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ShapeMismatchError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Ints("expected", e.Expected).
		Ints("got", e.Got).
		Str("type", "ShapeMismatchError")
}

// NewShapeMismatchError は新しいShapeMismatchErrorを作成し、スタックトレースを付与します。
func NewShapeMismatchError(op string, expected, got []int) error {
	return errors.WithStack(&ShapeMismatchError{Op: op, Expected: expected, Got: got})
}

// ArgumentError はラップされたメソッドに宣言と整合しない引数が渡された場合のエラーです。
// Estimator本体は呼び出されません。
type ArgumentError struct {
	Op       string
	Position int
	Expected string
	Got      string
}

func (e *ArgumentError) Error() string {
	if e.Position < 0 {
		return fmt.Sprintf("framelearn: %s: expected %s arguments, got %s", e.Op, e.Expected, e.Got)
	}
	return fmt.Sprintf("framelearn: %s: argument %d: expected %s, got %s", e.Op, e.Position, e.Expected, e.Got)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ArgumentError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("position", e.Position).
		Str("expected", e.Expected).
		Str("got", e.Got).
		Str("type", "ArgumentError")
}

// NewArgumentError は引数位置付きのArgumentErrorを作成します。
// position に -1 を渡すと引数の個数の不一致を表します。
func NewArgumentError(op string, position int, expected, got string) error {
	return errors.WithStack(&ArgumentError{Op: op, Position: position, Expected: expected, Got: got})
}

// ResultTypeError は型付きファサードが期待した型以外の結果を受け取った場合のエラーです。
type ResultTypeError struct {
	Op       string
	Expected string
	Got      string
}

func (e *ResultTypeError) Error() string {
	return fmt.Sprintf("framelearn: %s returned %s, want %s", e.Op, e.Got, e.Expected)
}

// NewResultTypeError は新しいResultTypeErrorを作成します。
func NewResultTypeError(op, expected, got string) error {
	return errors.WithStack(&ResultTypeError{Op: op, Expected: expected, Got: got})
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
	// ErrNotImplemented は機能が未実装の場合のエラーです。
	ErrNotImplemented = New("not implemented")

	// ErrEmptyData は空のデータが渡された場合のエラーです。
	ErrEmptyData = New("empty data")

	// ErrUnknownKind はRegistryに登録されていないEstimator種別を参照した場合のエラーです。
	ErrUnknownKind = New("unknown estimator kind")
)
