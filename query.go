package finances

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/PaesslerAG/jsonpath"
)

// Query evaluates a JSONPath expression, like "$.cuentas[*].nombre", against
// the document as it is persisted.
func Query(doc Document, path string) (any, error) {
	var b bytes.Buffer
	if err := EncodeDocument(&b, doc); err != nil {
		return nil, err
	}
	var jobj any
	if err := json.Unmarshal(b.Bytes(), &jobj); err != nil {
		return nil, fmt.Errorf("could not read document back: %w", err)
	}
	val, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("error evaluating %q: %w", path, err)
	}
	return val, nil
}
