package cli

import (
	"errors"
	"fmt"
	"gopkg.in/yaml.v3"
	"slices"
	"strconv"
)

var (
	ErrMalformedDocument = errors.New("malformed document")
	ErrMissingField      = errors.New("missing required field")
	ErrWrongType         = errors.New("wrong field type")
)

// FromYAML builds a [Command] tree from a YAML (or JSON) document in the shape of [CommandSpec].
// The document is validated as it's read, and any problem is reported as a [ConfigurationError] locating the offending node.
// Fields that aren't part of the schema are ignored.
func FromYAML(data []byte) (*Command, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, configPath{"root"}.errorf("%w: %w", ErrMalformedDocument, err)
	}
	if doc.Kind == 0 {
		return nil, configPath{"root"}.errorf("%w: empty document", ErrMalformedDocument)
	}
	return FromNode(&doc)
}

// FromNode is like [FromYAML], but reads a document that has already been parsed.
func FromNode(node *yaml.Node) (*Command, error) {
	d := &specDecoder{expanding: map[*yaml.Node]bool{}}
	spec, err := d.command(node, configPath{"root"})
	if err != nil {
		return nil, err
	}
	return FromSpec(spec)
}

type configPath []string

func (p configPath) with(segment string) configPath {
	return append(slices.Clone(p), segment)
}

func (p configPath) named(name string) configPath {
	return p.with(strconv.Quote(name))
}

func (p configPath) field(name string) configPath {
	return p.with(name)
}

func (p configPath) index(field string, i int) configPath {
	return p.with(fmt.Sprintf("%s[%d]", field, i))
}

func (p configPath) wrap(err error) *ConfigurationError {
	return &ConfigurationError{Path: slices.Clone(p), wrapped: err}
}

func (p configPath) errorf(format string, args ...any) *ConfigurationError {
	return p.wrap(fmt.Errorf(format, args...))
}

type specDecoder struct {
	expanding map[*yaml.Node]bool
}

// resolve unwraps document and alias nodes.
// The returned func must be called once the node has been fully decoded.
func (d *specDecoder) resolve(node *yaml.Node, path configPath) (*yaml.Node, func(), error) {
	var expanded []*yaml.Node
	done := func() {
		for _, n := range expanded {
			delete(d.expanding, n)
		}
	}
	for node != nil {
		switch node.Kind {
		case yaml.DocumentNode:
			if len(node.Content) == 0 {
				done()
				return nil, nil, path.errorf("%w: empty document", ErrMalformedDocument)
			}
			node = node.Content[0]
			continue
		case yaml.AliasNode:
			if d.expanding[node] {
				done()
				return nil, nil, path.errorf("%w: alias '%s' refers to itself", ErrMalformedDocument, node.Value)
			}
			d.expanding[node] = true
			expanded = append(expanded, node)
			node = node.Alias
			continue
		}
		return node, done, nil
	}
	done()
	return nil, nil, path.errorf("%w: empty node", ErrMalformedDocument)
}

func (d *specDecoder) fields(node *yaml.Node, path configPath) (map[string]*yaml.Node, error) {
	if node.Kind != yaml.MappingNode {
		return nil, path.errorf("%w: expected a mapping, got %s", ErrWrongType, describe(node))
	}
	fields := make(map[string]*yaml.Node, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		if key.Kind != yaml.ScalarNode {
			continue
		}
		fields[key.Value] = node.Content[i+1]
	}
	return fields, nil
}

func (d *specDecoder) command(node *yaml.Node, path configPath) (CommandSpec, error) {
	var spec CommandSpec
	node, done, err := d.resolve(node, path)
	if err != nil {
		return spec, err
	}
	defer done()
	fields, err := d.fields(node, path)
	if err != nil {
		return spec, err
	}
	if spec.Name, err = d.name(fields, path); err != nil {
		return spec, err
	}
	path = path.named(spec.Name)
	if err := d.optionalString(fields, "about", path, &spec.About); err != nil {
		return spec, err
	}
	if err := d.optionalString(fields, "version", path, &spec.Version); err != nil {
		return spec, err
	}
	if err := d.optionalBool(fields, "subcommand_required", path, &spec.SubcommandRequired); err != nil {
		return spec, err
	}
	err = d.sequence(fields, "args", path, func(item *yaml.Node, itemPath configPath) error {
		arg, err := d.arg(item, itemPath)
		if err != nil {
			return err
		}
		spec.Args = append(spec.Args, arg)
		return nil
	})
	if err != nil {
		return spec, err
	}
	err = d.sequence(fields, "subcommands", path, func(item *yaml.Node, itemPath configPath) error {
		sub, err := d.command(item, itemPath)
		if err != nil {
			return err
		}
		spec.Subcommands = append(spec.Subcommands, sub)
		return nil
	})
	return spec, err
}

func (d *specDecoder) arg(node *yaml.Node, path configPath) (ArgSpec, error) {
	var spec ArgSpec
	node, done, err := d.resolve(node, path)
	if err != nil {
		return spec, err
	}
	defer done()
	fields, err := d.fields(node, path)
	if err != nil {
		return spec, err
	}
	if spec.Name, err = d.name(fields, path); err != nil {
		return spec, err
	}
	checks := []error{
		d.optionalString(fields, "help", path, &spec.Help),
		d.optionalInt(fields, "index", path, &spec.Index),
		d.optionalBool(fields, "required", path, &spec.Required),
		d.optionalString(fields, "short", path, &spec.Short),
		d.optionalString(fields, "long", path, &spec.Long),
		d.optionalBool(fields, "multiple", path, &spec.Multiple),
		d.optionalBool(fields, "takes_value", path, &spec.TakesValue),
	}
	for _, err := range checks {
		if err != nil {
			return spec, err
		}
	}
	return spec, nil
}

func (d *specDecoder) name(fields map[string]*yaml.Node, path configPath) (string, error) {
	var name string
	node, ok := fields["name"]
	if !ok || isNull(node) {
		return "", path.errorf("%w: 'name'", ErrMissingField)
	}
	if err := d.scalar(node, "!!str", path.field("name"), &name); err != nil {
		return "", err
	}
	if len(name) == 0 {
		return "", path.errorf("%w: 'name'", ErrEmptyName)
	}
	return name, nil
}

func (d *specDecoder) sequence(fields map[string]*yaml.Node, key string, path configPath, each func(item *yaml.Node, itemPath configPath) error) error {
	node, ok := fields[key]
	if !ok || isNull(node) {
		return nil
	}
	node, done, err := d.resolve(node, path.field(key))
	if err != nil {
		return err
	}
	defer done()
	if node.Kind != yaml.SequenceNode {
		return path.field(key).errorf("%w: expected a sequence, got %s", ErrWrongType, describe(node))
	}
	for i, item := range node.Content {
		if err := each(item, path.index(key, i)); err != nil {
			return err
		}
	}
	return nil
}

func (d *specDecoder) optionalString(fields map[string]*yaml.Node, key string, path configPath, target *string) error {
	node, ok := fields[key]
	if !ok || isNull(node) {
		return nil
	}
	return d.scalar(node, "!!str", path.field(key), target)
}

func (d *specDecoder) optionalBool(fields map[string]*yaml.Node, key string, path configPath, target *bool) error {
	node, ok := fields[key]
	if !ok || isNull(node) {
		return nil
	}
	return d.scalar(node, "!!bool", path.field(key), target)
}

func (d *specDecoder) optionalInt(fields map[string]*yaml.Node, key string, path configPath, target *int) error {
	node, ok := fields[key]
	if !ok || isNull(node) {
		return nil
	}
	return d.scalar(node, "!!int", path.field(key), target)
}

func (d *specDecoder) scalar(node *yaml.Node, tag string, path configPath, target any) error {
	node, done, err := d.resolve(node, path)
	if err != nil {
		return err
	}
	defer done()
	if node.Kind != yaml.ScalarNode || node.ShortTag() != tag {
		return path.errorf("%w: expected %s, got %s", ErrWrongType, tagName(tag), describe(node))
	}
	if err := node.Decode(target); err != nil {
		return path.errorf("%w: %w", ErrWrongType, err)
	}
	return nil
}

func isNull(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null"
}

func tagName(tag string) string {
	switch tag {
	case "!!str":
		return "a string"
	case "!!bool":
		return "a boolean"
	case "!!int":
		return "an integer"
	case "!!float":
		return "a number"
	case "!!null":
		return "null"
	}
	return tag
}

func describe(node *yaml.Node) string {
	switch node.Kind {
	case yaml.MappingNode:
		return "a mapping"
	case yaml.SequenceNode:
		return "a sequence"
	case yaml.ScalarNode:
		return tagName(node.ShortTag())
	}
	return "an unexpected node"
}
