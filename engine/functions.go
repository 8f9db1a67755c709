package engine

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"sync"

	sqlite "modernc.org/sqlite"

	"github.com/viant/pathknn/vector"
)

var registerOnce sync.Once
var registerErr error

// RegisterVectorFunctions registers vec_l2sq with the driver so it is
// available on connections opened after this call. It is safe to call more
// than once.
func RegisterVectorFunctions() error {
	registerOnce.Do(func() {
		err := sqlite.RegisterDeterministicScalarFunction("vec_l2sq", 2, vecL2SqImpl)
		if err != nil && !strings.Contains(err.Error(), "already registered") {
			registerErr = err
		}
	})
	return registerErr
}

func asEmbedding(arg driver.Value) (vector.Vector, error) {
	switch v := arg.(type) {
	case nil:
		return nil, nil
	case []byte:
		return vector.DecodeEmbedding(v)
	default:
		return nil, fmt.Errorf("vec: unsupported argument type %T for embedding; want BLOB", arg)
	}
}

// vecL2SqImpl returns the squared Euclidean distance between two embedding
// BLOBs, or NULL when either is NULL.
func vecL2SqImpl(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("vec_l2sq: expected 2 arguments, got %d", len(args))
	}
	a, err := asEmbedding(args[0])
	if err != nil {
		return nil, err
	}
	b, err := asEmbedding(args[1])
	if err != nil {
		return nil, err
	}
	if a == nil || b == nil {
		return nil, nil
	}
	d, err := vector.SquaredL2(a, b)
	if err != nil {
		return nil, fmt.Errorf("vec_l2sq: %w", err)
	}
	return d, nil
}
