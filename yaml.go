package vector

import "gopkg.in/yaml.v3"

// MarshalYAML emits the active elements as a sequence, for vectors held by
// value or by pointer.
func (v Vector[T]) MarshalYAML() (any, error) {
	out := make([]T, v.n)
	copy(out, v.buf)
	return out, nil
}

// UnmarshalYAML decodes a sequence into v with the capacity rules of Of.
func (v *Vector[T]) UnmarshalYAML(node *yaml.Node) error {
	var vals []T
	if err := node.Decode(&vals); err != nil {
		return err
	}
	nv := Of(vals...)
	v.buf, v.n = nv.buf, nv.n
	return nil
}
