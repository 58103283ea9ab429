package uutreport

// AdditionalData is a named bag of typed properties. It can be attached to
// the report header or to an individual step.
type AdditionalData struct {
	Name  string      `json:"name"`
	Props []*Property `json:"props,omitempty"`
}

// AddProperty appends a scalar property to the additional data. Value and
// comment may be empty. Properties of type Obj take nested properties via
// Property.AddProperty, type Array via Property.AddArray.
func (d *AdditionalData) AddProperty(name string, typ PropertyType, value, comment string) (*Property, error) {
	prop, err := newProperty(name, typ, value, comment)
	if err != nil {
		return nil, err
	}
	d.Props = append(d.Props, prop)

	return prop, nil
}

// Property is one entry in an additional-data bag. Obj properties carry
// nested properties, Array properties carry an Array payload.
type Property struct {
	Name    string       `json:"name,omitempty"`
	Type    PropertyType `json:"type"`
	Flags   *int         `json:"flags,omitempty"`
	Value   string       `json:"value,omitempty"`
	Comment string       `json:"comment,omitempty"`
	Props   []*Property  `json:"props,omitempty"`
	Array   *Array       `json:"array,omitempty"`
}

func newProperty(name string, typ PropertyType, value, comment string) (*Property, error) {
	if err := checkLen("property name", name, 1, 100); err != nil {
		return nil, err
	}

	return &Property{
		Name:    name,
		Type:    typ,
		Value:   value,
		Comment: comment,
	}, nil
}

// AddProperty appends a nested sub-property. Used for properties of type Obj.
func (p *Property) AddProperty(name string, typ PropertyType, value, comment string) (*Property, error) {
	prop, err := newProperty(name, typ, value, comment)
	if err != nil {
		return nil, err
	}
	p.Props = append(p.Props, prop)

	return prop, nil
}

// AddArray attaches array information to the property. Used for properties
// of type Array.
func (p *Property) AddArray(dimension int, typ PropertyType) *Array {
	arr := &Array{
		Dimension: dimension,
		Type:      string(typ),
	}
	p.Array = arr

	return arr
}

// Array describes the shape and contents of an array-typed property
type Array struct {
	Dimension int          `json:"dimension"`
	Type      string       `json:"type"`
	Indexes   []ArrayIndex `json:"indexes,omitempty"`
}

// AddIndex appends one element of the array, addressed by its index vector
func (a *Array) AddIndex(text string, indexes []int, value *Property) *ArrayIndex {
	a.Indexes = append(a.Indexes, ArrayIndex{
		Text:    text,
		Indexes: indexes,
		Value:   value,
	})

	return &a.Indexes[len(a.Indexes)-1]
}

// ArrayIndex is a single element of an array-typed property
type ArrayIndex struct {
	Text    string    `json:"text"`
	Indexes []int     `json:"indexes"`
	Value   *Property `json:"value"`
}
