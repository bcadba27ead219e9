package card

import "fmt"

// Language identifies the card collection being studied, by ISO 639-1 code.
type Language string

const Spanish Language = "es"

var displayNames = map[Language]string{
	Spanish: "Spanish",
}

func (l Language) DisplayName() string {
	if name, ok := displayNames[l]; ok {
		return name
	}
	return string(l)
}

func (l Language) IsSupported() bool {
	_, ok := displayNames[l]
	return ok
}

// StoreFileName is the name of the card collection file for the language.
func (l Language) StoreFileName() string {
	return fmt.Sprintf("cards_%s_v1.yml", l)
}
