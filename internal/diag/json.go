package diag

import (
	"strconv"

	"github.com/tidwall/sjson"
)

// ToJSON renders diags as a JSON array, building it incrementally with
// sjson.SetBytes rather than collecting a slice of structs and calling
// encoding/json.Marshal once — each diagnostic is appended to the growing
// byte buffer as it is produced.
func ToJSON(diags []Diagnostic) ([]byte, error) {
	buf := []byte("[]")
	var err error
	for i, d := range diags {
		prefix := strconv.Itoa(i)
		buf, err = sjson.SetBytes(buf, prefix+".kind", d.Kind.String())
		if err != nil {
			return nil, err
		}
		buf, err = sjson.SetBytes(buf, prefix+".message", d.Message)
		if err != nil {
			return nil, err
		}
		buf, err = sjson.SetBytes(buf, prefix+".phase", string(d.Phase))
		if err != nil {
			return nil, err
		}
		buf, err = sjson.SetBytes(buf, prefix+".position.line", d.Position.Line)
		if err != nil {
			return nil, err
		}
		buf, err = sjson.SetBytes(buf, prefix+".position.column", d.Position.Column)
		if err != nil {
			return nil, err
		}
	}
	return buf, nil
}
