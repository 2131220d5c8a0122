package flowfields

import (
	"fmt"
	"math"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ReferenceValues are the free stream constants of the flow solution
type ReferenceValues struct {
	Gamma   float64 `json:"gamma" gcfg:"gamma"`
	Rgas    float64 `json:"rgas" gcfg:"rgas"`
	Rinf    float64 `json:"rinf" gcfg:"rinf"`
	Pinf    float64 `json:"pinf" gcfg:"pinf"`
	Tinf    float64 `json:"tinf" gcfg:"tinf"`
	Ainf    float64 `json:"ainf" gcfg:"ainf"`
	RefMach float64 `json:"refMach" gcfg:"refMach"`
}

var finite = validation.By(func(value interface{}) error {
	if f, ok := value.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
		return fmt.Errorf("must be finite")
	}
	return nil
})

func (rv ReferenceValues) Validate() error {
	return validation.ValidateStruct(&rv,
		validation.Field(&rv.Gamma, validation.Required, finite, validation.Min(1.).Exclusive()),
		validation.Field(&rv.Rgas, validation.Required, finite, validation.Min(0.).Exclusive()),
		validation.Field(&rv.Rinf, validation.Required, finite, validation.Min(0.).Exclusive()),
		validation.Field(&rv.Pinf, finite, validation.Min(0.)),
		validation.Field(&rv.Tinf, validation.Required, finite, validation.Min(0.).Exclusive()),
		validation.Field(&rv.Ainf, validation.Required, finite, validation.Min(0.).Exclusive()),
		validation.Field(&rv.RefMach, finite),
	)
}

func (rv ReferenceValues) Print() {
	fmt.Printf("%8.5f\t\t= Gamma\n", rv.Gamma)
	fmt.Printf("%8.5g\t\t= Rgas\n", rv.Rgas)
	fmt.Printf("%8.5g\t\t= Rinf\n", rv.Rinf)
	fmt.Printf("%8.5g\t\t= Pinf\n", rv.Pinf)
	fmt.Printf("%8.5g\t\t= Tinf\n", rv.Tinf)
	fmt.Printf("%8.5g\t\t= Ainf\n", rv.Ainf)
	fmt.Printf("%8.5f\t\t= RefMach\n", rv.RefMach)
}
