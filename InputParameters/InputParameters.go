package InputParameters

import (
	"fmt"
	"os"
	"strings"

	"github.com/ghodss/yaml"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/notargets/gopersa/flowfields"
	"github.com/notargets/gopersa/types"
)

// Parameters obtained from the YAML input file
type InputParameters struct {
	Title           string   `yaml:"Title"`
	GridToMeter     float64  `yaml:"GridToMeter"` // Multiplier taking facet coordinates to meters
	FacetFolder     string   `yaml:"FacetFolder"`
	ExtractsScript  string   `yaml:"ExtractsScript"`
	TapPattern      string   `yaml:"TapPattern"` // Printf pattern taking the zone index
	ReferenceFile   string   `yaml:"ReferenceFile"`
	OutputDir       string   `yaml:"OutputDir"`
	Fields          []string `yaml:"Fields"`
	Stationary      bool     `yaml:"Stationary"`
	TimeStart       int      `yaml:"TimeStart"`
	NumTimes        int      `yaml:"NumTimes"` // -1 reads through the end of each stream
	Parallelism     int      `yaml:"Parallelism"`
	ContinueOnError bool     `yaml:"ContinueOnError"`
	Units           string   `yaml:"Units"`
	Zones           []string `yaml:"Zones"` // Empty means discover from ExtractsScript
}

// NewInputParameters returns the defaults used by the Helios extract workflow:
// inch grids, stationary taps and a skipped first record.
func NewInputParameters() *InputParameters {
	return &InputParameters{
		Title:          "Helios extracts",
		GridToMeter:    0.0254,
		FacetFolder:    "facets",
		ExtractsScript: "extracts/tap_extracts.py",
		TapPattern:     "extracts/tap_%02d.bin",
		ReferenceFile:  "inputs.yaml",
		OutputDir:      "wopwop_input_files",
		Fields:         []string{"Density", "XMomentum", "YMomentum", "ZMomentum", "Pressure"},
		Stationary:     true,
		TimeStart:      1,
		NumTimes:       -1,
		Parallelism:    1,
		Units:          "Pa",
	}
}

func (ip *InputParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

// ReadFile overlays the parameters in path on the receiver's current values
func (ip *InputParameters) ReadFile(path string) (err error) {
	var data []byte
	if data, err = os.ReadFile(path); err != nil {
		return &types.ConfigurationError{Path: path, Msg: "unable to read input file", Err: err}
	}
	if err = ip.Parse(data); err != nil {
		return &types.ConfigurationError{Path: path, Msg: "unable to parse input file", Err: err}
	}
	return
}

func (ip InputParameters) Validate() error {
	return validation.ValidateStruct(&ip,
		validation.Field(&ip.GridToMeter, validation.Required, validation.Min(0.).Exclusive()),
		validation.Field(&ip.TapPattern, validation.Required, validation.By(func(value interface{}) error {
			if !strings.Contains(value.(string), "%") {
				return fmt.Errorf("must contain a verb for the zone index")
			}
			return nil
		})),
		validation.Field(&ip.Fields, validation.Required, validation.Each(validation.By(func(value interface{}) error {
			_, err := flowfields.NewFlowField(value.(string))
			return err
		}))),
		validation.Field(&ip.TimeStart, validation.Min(0)),
		validation.Field(&ip.NumTimes, validation.Min(-1)),
		validation.Field(&ip.Parallelism, validation.Min(1)),
		validation.Field(&ip.ExtractsScript, validation.When(len(ip.Zones) == 0, validation.Required)),
	)
}

// TapFile is the tap stream path of the zone at index i
func (ip *InputParameters) TapFile(i int) string {
	return fmt.Sprintf(ip.TapPattern, i)
}

func (ip *InputParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("%8.5f\t\t= GridToMeter\n", ip.GridToMeter)
	fmt.Printf("[%s]\t\t= FacetFolder\n", ip.FacetFolder)
	fmt.Printf("[%s]\t= ExtractsScript\n", ip.ExtractsScript)
	fmt.Printf("[%s]\t= TapPattern\n", ip.TapPattern)
	fmt.Printf("[%s]\t\t= ReferenceFile\n", ip.ReferenceFile)
	fmt.Printf("[%s]\t= OutputDir\n", ip.OutputDir)
	fmt.Printf("%v\t= Fields\n", ip.Fields)
	fmt.Printf("[%v]\t\t\t= Stationary\n", ip.Stationary)
	fmt.Printf("[%d]\t\t\t\t= TimeStart\n", ip.TimeStart)
	fmt.Printf("[%d]\t\t\t\t= NumTimes\n", ip.NumTimes)
	fmt.Printf("[%d]\t\t\t\t= Parallelism\n", ip.Parallelism)
	fmt.Printf("[%v]\t\t\t= ContinueOnError\n", ip.ContinueOnError)
	fmt.Printf("[%s]\t\t\t= Units\n", ip.Units)
	if len(ip.Zones) != 0 {
		fmt.Printf("%v\t= Zones\n", ip.Zones)
	}
}
