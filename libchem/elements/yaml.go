package elements

import (
	"io"

	"github.com/2x3systems/chem2x3/chem"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// yamlElement is the on-disk form of an Element:
//
//	elements:
//	  - symbol: C
//	    number: 6
//	    mass: 12.011
//	  - symbol: D
//	    number: 1
//	    isotope: 2
//	    mass: 2.014102
type yamlElement struct {
	Symbol  string  `yaml:"symbol"`
	Number  uint8   `yaml:"number"`
	Isotope uint16  `yaml:"isotope,omitempty"`
	Mass    float64 `yaml:"mass"`
}

type yamlTable struct {
	Elements []yamlElement `yaml:"elements"`
}

// LoadYAML reads a species table in the format shown for yamlElement.
func LoadYAML(r io.Reader) (*Table, error) {
	var doc yamlTable
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "decoding species table")
	}
	if len(doc.Elements) == 0 {
		return nil, errors.New("species table has no elements")
	}

	elems := make([]Element, len(doc.Elements))
	for i, ye := range doc.Elements {
		elems[i] = Element{
			Species: chem.Species{
				Number:  ye.Number,
				Isotope: ye.Isotope,
			},
			Symbol: ye.Symbol,
			Mass:   ye.Mass,
		}
	}
	return NewTable(elems...)
}

// WriteYAML writes T in the format read by LoadYAML, ordered by species.
func (T *Table) WriteYAML(w io.Writer) error {
	doc := yamlTable{
		Elements: make([]yamlElement, 0, len(T.bySpecies)),
	}
	for _, e := range T.Elements() {
		doc.Elements = append(doc.Elements, yamlElement{
			Symbol:  e.Symbol,
			Number:  e.Species.Number,
			Isotope: e.Species.Isotope,
			Mass:    e.Mass,
		})
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return err
	}
	return enc.Close()
}
