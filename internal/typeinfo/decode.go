package typeinfo

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// ErrInvalidDocument is returned (wrapped) for malformed type documents.
var ErrInvalidDocument = errors.New("invalid type document")

// document is the on-disk shape of a type tree. A bare scalar ("string")
// is shorthand for a primitive of that name.
type document struct {
	Kind               string        `yaml:"kind"`
	Name               string        `yaml:"name"`
	Literal            any           `yaml:"literal"`
	Properties         []propertyDoc `yaml:"properties"`
	GenericParams      []paramDoc    `yaml:"genericParams"`
	UnresolvedGenerics []paramDoc    `yaml:"unresolvedGenerics"`
	IndexSignature     *indexSigDoc  `yaml:"indexSignature"`
	ElementType        *document     `yaml:"elementType"`
	UnionTypes         []*document   `yaml:"unionTypes"`
	IntersectionTypes  []*document   `yaml:"intersectionTypes"`
	TypeArguments      []*document   `yaml:"typeArguments"`
	Constraint         *document     `yaml:"constraint"`
	Default            *document     `yaml:"default"`
	Elements           []*document   `yaml:"elements"`
	Values             []any         `yaml:"values"`
	Target             *document     `yaml:"target"`
	Object             *document     `yaml:"object"`
	Index              *document     `yaml:"index"`
	CheckType          *document     `yaml:"checkType"`
	ExtendsType        *document     `yaml:"extendsType"`
	TrueType           *document     `yaml:"trueType"`
	FalseType          *document     `yaml:"falseType"`
	InferredTypes      []string      `yaml:"inferredTypes"`
}

type propertyDoc struct {
	Name     string    `yaml:"name"`
	Type     *document `yaml:"type"`
	Optional bool      `yaml:"optional"`
	Readonly bool      `yaml:"readonly"`
	JSDoc    string    `yaml:"jsDoc"`
}

type paramDoc struct {
	Name       string    `yaml:"name"`
	Constraint *document `yaml:"constraint"`
	Default    *document `yaml:"default"`
}

type indexSigDoc struct {
	KeyType   string    `yaml:"keyType"`
	ValueType *document `yaml:"valueType"`
	Readonly  bool      `yaml:"readonly"`
}

// UnmarshalYAML accepts either a full mapping or a scalar primitive name.
func (d *document) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		d.Kind = KindPrimitive.String()
		d.Name = node.Value

		return nil
	}

	type plain document

	return node.Decode((*plain)(d))
}

// Decode parses a YAML (or JSON) type document into a TypeInfo tree.
func Decode(data []byte) (TypeInfo, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(ErrInvalidDocument, err.Error())
	}

	return doc.build("$")
}

// DecodeFile reads and decodes a type document from disk.
func DecodeFile(path string) (TypeInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading type document %s", path)
	}

	t, err := Decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s", path)
	}

	return t, nil
}

func invalid(path, format string, args ...any) error {
	return errors.Wrapf(ErrInvalidDocument, "%s: %s", path, fmt.Sprintf(format, args...))
}

func (d *document) build(path string) (TypeInfo, error) {
	if d == nil {
		return nil, invalid(path, "missing type")
	}

	kind, ok := ParseKind(d.Kind)
	if !ok {
		return nil, invalid(path, "unknown kind %q", d.Kind)
	}

	switch kind {
	case KindPrimitive:
		if d.Name == "" {
			return nil, invalid(path, "primitive requires a name")
		}
		return &Primitive{Name: d.Name, Literal: normalizeLiteral(d.Literal)}, nil

	case KindObject:
		return d.buildObject(path)

	case KindArray:
		elem, err := d.ElementType.build(path + ".elementType")
		if err != nil {
			return nil, err
		}
		return &Array{ElementType: elem}, nil

	case KindUnion:
		members, err := buildList(d.UnionTypes, path+".unionTypes")
		if err != nil {
			return nil, err
		}
		return &Union{UnionTypes: members}, nil

	case KindIntersection:
		members, err := buildList(d.IntersectionTypes, path+".intersectionTypes")
		if err != nil {
			return nil, err
		}
		return &Intersection{IntersectionTypes: members}, nil

	case KindGeneric:
		return d.buildGeneric(path)

	case KindLiteral:
		if d.Literal == nil {
			return nil, invalid(path, "literal requires a value")
		}
		return &Literal{Literal: normalizeLiteral(d.Literal)}, nil

	case KindUnknown:
		return &Unknown{}, nil

	case KindNever:
		return &Never{}, nil

	case KindReference:
		if d.Name == "" {
			return nil, invalid(path, "reference requires a name")
		}
		args, err := buildList(d.TypeArguments, path+".typeArguments")
		if err != nil {
			return nil, err
		}
		return &Reference{Name: d.Name, TypeArguments: args}, nil

	case KindFunction:
		return &Function{Name: d.Name}, nil

	case KindTuple:
		elems, err := buildList(d.Elements, path+".elements")
		if err != nil {
			return nil, err
		}
		return &Tuple{Elements: elems}, nil

	case KindEnum:
		values := make([]any, 0, len(d.Values))
		for _, v := range d.Values {
			values = append(values, normalizeLiteral(v))
		}
		return &Enum{Name: d.Name, Values: values}, nil

	case KindKeyof, KindTypeof:
		target, err := d.Target.build(path + ".target")
		if err != nil {
			return nil, err
		}
		if kind == KindKeyof {
			return &Keyof{Target: target}, nil
		}
		return &Typeof{Target: target}, nil

	case KindIndex:
		obj, err := d.Object.build(path + ".object")
		if err != nil {
			return nil, err
		}
		idx, err := d.Index.build(path + ".index")
		if err != nil {
			return nil, err
		}
		return &Index{Object: obj, Index: idx}, nil

	case KindConditional:
		return d.buildConditional(path)
	}

	return nil, invalid(path, "unsupported kind %s", kind)
}

func (d *document) buildObject(path string) (TypeInfo, error) {
	obj := &Object{Name: d.Name}

	for i, p := range d.Properties {
		ppath := fmt.Sprintf("%s.properties[%d]", path, i)
		if p.Name == "" {
			return nil, invalid(ppath, "property requires a name")
		}

		t, err := p.Type.build(ppath + ".type")
		if err != nil {
			return nil, err
		}

		obj.Properties = append(obj.Properties, PropertyInfo{
			Name:     p.Name,
			Type:     t,
			Optional: p.Optional,
			Readonly: p.Readonly,
			JSDoc:    p.JSDoc,
		})
	}

	var err error
	if obj.GenericParams, err = buildParams(d.GenericParams, path+".genericParams"); err != nil {
		return nil, err
	}

	if obj.UnresolvedGenerics, err = buildParams(d.UnresolvedGenerics, path+".unresolvedGenerics"); err != nil {
		return nil, err
	}

	if d.IndexSignature != nil {
		vt, err := d.IndexSignature.ValueType.build(path + ".indexSignature.valueType")
		if err != nil {
			return nil, err
		}

		keyType := d.IndexSignature.KeyType
		if keyType == "" {
			keyType = "string"
		}

		obj.IndexSignature = &IndexSignature{KeyType: keyType, ValueType: vt, Readonly: d.IndexSignature.Readonly}
	}

	return obj, nil
}

func (d *document) buildGeneric(path string) (TypeInfo, error) {
	if d.Name == "" {
		return nil, invalid(path, "generic requires a name")
	}

	g := &Generic{Name: d.Name}

	var err error
	if g.TypeArguments, err = buildList(d.TypeArguments, path+".typeArguments"); err != nil {
		return nil, err
	}

	if d.Constraint != nil {
		if g.Constraint, err = d.Constraint.build(path + ".constraint"); err != nil {
			return nil, err
		}
	}

	if d.Default != nil {
		if g.Default, err = d.Default.build(path + ".default"); err != nil {
			return nil, err
		}
	}

	if g.UnresolvedGenerics, err = buildParams(d.UnresolvedGenerics, path+".unresolvedGenerics"); err != nil {
		return nil, err
	}

	return g, nil
}

func (d *document) buildConditional(path string) (TypeInfo, error) {
	parts := []struct {
		doc  *document
		name string
	}{
		{d.CheckType, "checkType"},
		{d.ExtendsType, "extendsType"},
		{d.TrueType, "trueType"},
		{d.FalseType, "falseType"},
	}

	built := make([]TypeInfo, len(parts))
	for i, p := range parts {
		t, err := p.doc.build(path + "." + p.name)
		if err != nil {
			return nil, err
		}
		built[i] = t
	}

	return &Conditional{
		CheckType:     built[0],
		ExtendsType:   built[1],
		TrueType:      built[2],
		FalseType:     built[3],
		InferredTypes: d.InferredTypes,
	}, nil
}

func buildList(docs []*document, path string) ([]TypeInfo, error) {
	if len(docs) == 0 {
		return nil, nil
	}

	out := make([]TypeInfo, 0, len(docs))
	for i, d := range docs {
		t, err := d.build(fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}

	return out, nil
}

func buildParams(docs []paramDoc, path string) ([]GenericParam, error) {
	if len(docs) == 0 {
		return nil, nil
	}

	out := make([]GenericParam, 0, len(docs))
	for i, p := range docs {
		ppath := fmt.Sprintf("%s[%d]", path, i)
		if p.Name == "" {
			return nil, invalid(ppath, "generic parameter requires a name")
		}

		gp := GenericParam{Name: p.Name}

		var err error
		if p.Constraint != nil {
			if gp.Constraint, err = p.Constraint.build(ppath + ".constraint"); err != nil {
				return nil, err
			}
		}

		if p.Default != nil {
			if gp.Default, err = p.Default.build(ppath + ".default"); err != nil {
				return nil, err
			}
		}

		out = append(out, gp)
	}

	return out, nil
}

// normalizeLiteral folds YAML integer scalars into float64 so literal values
// compare the same way regardless of how the document spelled them.
func normalizeLiteral(v any) any {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case uint64:
		return float64(n)
	default:
		return v
	}
}
