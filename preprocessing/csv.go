// Package preprocessing は学習データの読み込みと整形を提供します。
//
// 読み込み形式はカンマ区切りの単純なテキストです。引用符とセミコロンは
// 取り除かれ、連続したカンマは一つの区切りとして扱われます。
package preprocessing

import (
	"bufio"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/c45/core/dataset"
	"github.com/YuminosukeSato/c45/pkg/errors"
	"github.com/YuminosukeSato/c45/pkg/log"
)

var (
	separator = regexp.MustCompile(`,+`)
	numeric   = regexp.MustCompile(`^-?\d+(\.\d+)?$`)
	stripped  = strings.NewReplacer("\r", "", "\n", "", `"`, "", ";", "")
)

// ReadCSV は r から表を読み込む。最初の空でない行がヘッダになる。
//
// 数値に見えるトークンは整数部だけを残した Numeric になり（小数部は切り捨て）、
// それ以外は小文字化された Categorical になる。列数の合わない行は
// ValidationError、データが一行もなければ ErrEmptyData を返す。
func ReadCSV(r io.Reader) (*dataset.Table, error) {
	var (
		header []string
		rows   [][]dataset.Value
	)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := stripped.Replace(sc.Text())
		if line == "" {
			continue
		}
		tokens := split(line)
		if header == nil {
			header = tokens
			continue
		}
		if len(tokens) != len(header) {
			return nil, errors.NewValidationError("line "+strconv.Itoa(lineNo),
				"expected "+strconv.Itoa(len(header))+" fields", len(tokens))
		}
		row := make([]dataset.Value, len(tokens))
		for i, tok := range tokens {
			v, err := parseToken(tok)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", lineNo)
			}
			row[i] = v
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "read csv")
	}
	if len(rows) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "csv has no data rows")
	}
	return dataset.NewTable(header, rows)
}

// split tokenizes a line on runs of commas. Trailing empty fields are dropped.
func split(line string) []string {
	tokens := separator.Split(strings.ToLower(line), -1)
	for len(tokens) > 1 && tokens[len(tokens)-1] == "" {
		tokens = tokens[:len(tokens)-1]
	}
	return tokens
}

func parseToken(tok string) (dataset.Value, error) {
	if !numeric.MatchString(tok) {
		return dataset.NewCategorical(tok), nil
	}
	whole, _, _ := strings.Cut(tok, ".")
	n, err := strconv.Atoi(whole)
	if err != nil {
		return dataset.EmptyValue(), errors.NewValidationError("value", "integer out of range", tok)
	}
	return dataset.NewNumeric(n), nil
}

// ReadCSVFile は path のファイルを ReadCSV で読み込む。
func ReadCSVFile(path string) (*dataset.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	t, err := ReadCSV(f)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	log.GetLoggerWithName("preprocessing").Info("Dataset loaded",
		log.OperationKey, log.OperationLoad,
		log.SourceKey, path,
		log.SamplesKey, t.NumRows(),
		log.FeaturesKey, t.Width(),
	)
	return t, nil
}

// MakeConsistent はテスト表のヘッダを学習表のものに揃えたコピーを返す。
// 列数が異なる場合は ValidationError を返す。
func MakeConsistent(train, test *dataset.Table) (*dataset.Table, error) {
	if train.Width() != test.Width() {
		return nil, errors.NewValidationError("test",
			"must have as many columns as the training table ("+strconv.Itoa(train.Width())+")", test.Width())
	}
	return test.WithHeader(train.Attributes())
}
