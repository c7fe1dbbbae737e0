package model

import (
	"io"
	"os"

	"github.com/goccy/go-json"

	"github.com/YuminosukeSato/framelearn/pkg/errors"
)

// SaveModel は値をJSONとしてファイルに保存する
//
// パラメータ:
//   - v: 保存する値（adapter.Snapshotなど）
//   - filename: 保存先のファイルパス
//
// 使用例:
//
//	snap, _ := registry.Persist(proxy)
//	err := model.SaveModel(snap, "selector.json")
func SaveModel(v interface{}, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "failed to create file")
	}
	defer file.Close()

	return SaveModelToWriter(v, file)
}

// LoadModel はファイルからJSONを読み込む
//
// 使用例:
//
//	var snap adapter.Snapshot
//	err := model.LoadModel(&snap, "selector.json")
func LoadModel(v interface{}, filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return errors.Wrap(err, "failed to open file")
	}
	defer file.Close()

	return LoadModelFromReader(v, file)
}

// SaveModelToWriter は値をio.Writerに書き出す
func SaveModelToWriter(v interface{}, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return errors.Wrap(err, "failed to encode model")
	}
	return nil
}

// LoadModelFromReader はio.Readerから値を読み込む (vはポインタ)
func LoadModelFromReader(v interface{}, r io.Reader) error {
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(v); err != nil {
		return errors.Wrap(err, "failed to decode model")
	}
	return nil
}
