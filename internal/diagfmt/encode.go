package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"cxxtargs/internal/bracket"
	"cxxtargs/internal/message"
)

// Encoding is a structured output format.
type Encoding uint8

const (
	EncodingJSON Encoding = iota + 1
	EncodingYAML
	EncodingMsgpack
)

func (e Encoding) String() string {
	switch e {
	case EncodingJSON:
		return "json"
	case EncodingYAML:
		return "yaml"
	case EncodingMsgpack:
		return "msgpack"
	default:
		return "unknown"
	}
}

// ParseEncoding maps a --format value to an Encoding. ok is false for
// text formats.
func ParseEncoding(s string) (Encoding, bool) {
	switch strings.ToLower(s) {
	case "json":
		return EncodingJSON, true
	case "yaml", "yml":
		return EncodingYAML, true
	case "msgpack":
		return EncodingMsgpack, true
	default:
		return 0, false
	}
}

// NodeValue converts n to the wire shape {"leaf": text} or
// {"list": [...]}. Empty lists stay present as an empty array.
func NodeValue(n bracket.Node) map[string]any {
	if n.IsLeaf() {
		return map[string]any{"leaf": n.Text}
	}
	items := make([]any, len(n.Children))
	for i, c := range n.Children {
		items[i] = NodeValue(c)
	}
	return map[string]any{"list": items}
}

// ArgDoc is one argument in structured output.
type ArgDoc struct {
	Name  string         `json:"name" yaml:"name" msgpack:"name"`
	Text  string         `json:"text" yaml:"text" msgpack:"text"`
	Value map[string]any `json:"value" yaml:"value" msgpack:"value"`
}

// MessageDoc is a parsed message in structured output.
type MessageDoc struct {
	Signature string   `json:"signature" yaml:"signature" msgpack:"signature"`
	Arguments []ArgDoc `json:"arguments" yaml:"arguments" msgpack:"arguments"`
}

func MessageDocOf(m *message.Message) MessageDoc {
	doc := MessageDoc{
		Signature: m.Signature,
		Arguments: make([]ArgDoc, len(m.Args)),
	}
	for i, a := range m.Args {
		doc.Arguments[i] = ArgDoc{Name: a.Name, Text: a.ValueText, Value: NodeValue(a.Value)}
	}
	return doc
}

// ResultDoc is the outcome for one input of a batch. Exactly one of
// Message and Error is set unless Skipped.
type ResultDoc struct {
	Input   string          `json:"input" yaml:"input" msgpack:"input"`
	Line    uint32          `json:"line,omitempty" yaml:"line,omitempty" msgpack:"line,omitempty"`
	Skipped bool            `json:"skipped,omitempty" yaml:"skipped,omitempty" msgpack:"skipped,omitempty"`
	Message *MessageDoc     `json:"message,omitempty" yaml:"message,omitempty" msgpack:"message,omitempty"`
	Error   *DiagnosticJSON `json:"error,omitempty" yaml:"error,omitempty" msgpack:"error,omitempty"`
}

// BatchDoc is the root of structured batch output.
type BatchDoc struct {
	Results []ResultDoc `json:"results" yaml:"results" msgpack:"results"`
	Count   int         `json:"count" yaml:"count" msgpack:"count"`
	Failed  int         `json:"failed" yaml:"failed" msgpack:"failed"`
	Skipped int         `json:"skipped" yaml:"skipped" msgpack:"skipped"`
}

// Encode writes doc in the given encoding. JSON is indented; msgpack is
// written as a single binary value.
func Encode(w io.Writer, enc Encoding, doc any) error {
	switch enc {
	case EncodingJSON:
		je := json.NewEncoder(w)
		je.SetIndent("", "  ")
		return je.Encode(doc)
	case EncodingYAML:
		ye := yaml.NewEncoder(w)
		ye.SetIndent(2)
		if err := ye.Encode(doc); err != nil {
			return err
		}
		return ye.Close()
	case EncodingMsgpack:
		me := msgpack.NewEncoder(w)
		me.UseCompactInts(true)
		return me.Encode(doc)
	default:
		return fmt.Errorf("unsupported encoding %v", enc)
	}
}
