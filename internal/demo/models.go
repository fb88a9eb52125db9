package demo

// Basic carries three required values; Value2 must also fall between 5 and 10.
type Basic struct {
	Value1 string `display:"Value 1" validate:"required" msgkey:"required=ValueRequired"`
	Value2 string `display:"Value 2" validate:"required;range=5:10" msgkey:"required=Value2Required;range=Range"`
	Value3 string `display:"Value 3" validate:"required" msgkey:"required=Value3Required"`
}

// Custom adds a whole-form check on top of its attribute rules.
type Custom struct {
	Value1 string `display:"Value 1" validate:"required" msgkey:"required=ValueRequired"`
	Value2 string `display:"Value 2" validate:"required" msgkey:"required=Value2Required"`
}

// ValidateForm rejects the sentinel value "xxx".
func (c *Custom) ValidateForm() string {
	if c.Value1 == "xxx" {
		return "This won't fly"
	}
	return ""
}

type RequiredTrue struct {
	Value bool `validate:"requiredTrue" msg:"requiredTrue=Switch must be flipped!"`
}

type RequiredIfTrue struct {
	Flag  bool
	Value string `validate:"requiredIfTrue=Flag"`
}

// NewRequiredIfTrue starts with the guard switched on.
func NewRequiredIfTrue() *RequiredIfTrue {
	return &RequiredIfTrue{Flag: true}
}

type RequiredIfFalse struct {
	Flag  bool
	Value string `validate:"requiredIfFalse=Flag"`
}

// Attributes combines every conditional rule kind on one form.
type Attributes struct {
	MustCheck  bool `display:"Must check" validate:"requiredTrue"`
	Value1Flag bool
	Value1     string `display:"Value 1" validate:"requiredIfTrue=Value1Flag"`
	Value2Flag bool
	Value2     string `display:"Value 2" validate:"requiredIfFalse=Value2Flag"`
}
