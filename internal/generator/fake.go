package generator

import (
	"github.com/go-faker/faker/v4"
)

// FakeData supplies human-looking strings
type FakeData interface {
	Username() string
	Email() string
	Name() string
	Word() string
	Sentence() string
	Paragraph() string
}

// Faker is the FakeData backed by go-faker
type Faker struct{}

func (Faker) Username() string  { return faker.Username() }
func (Faker) Email() string     { return faker.Email() }
func (Faker) Name() string      { return faker.Name() }
func (Faker) Word() string      { return faker.Word() }
func (Faker) Sentence() string  { return faker.Sentence() }
func (Faker) Paragraph() string { return faker.Paragraph() }

var colorNames = []string{
	"AliceBlue", "Aqua", "Beige", "Black", "BlanchedAlmond", "Blue", "Brown",
	"Coral", "Crimson", "DarkGreen", "DarkOrange", "Gold", "Gray", "Indigo",
	"Ivory", "Khaki", "Lavender", "LightBlue", "Lime", "Magenta", "Maroon",
	"MintCream", "Navy", "Olive", "Orange", "Orchid", "Pink", "Plum", "Purple",
	"Red", "Salmon", "SeaGreen", "Sienna", "Silver", "SkyBlue", "Tan", "Teal",
	"Tomato", "Turquoise", "Violet", "Wheat", "White", "Yellow",
}

var phraseAdjectives = []string{
	"Adaptive", "Advanced", "Compact", "Cross-platform", "Customizable",
	"Ergonomic", "Essential", "Integrated", "Innovative", "Modular",
	"Optimized", "Premium", "Reactive", "Robust", "Seamless", "Smart",
	"Streamlined", "Sustainable", "Universal", "Versatile",
}

var categories = []string{"Electronics", "Books", "Clothing", "Home & Kitchen", "Sports"}

var variantSizes = []string{"S", "M", "L", "XL", "One Size"}

// forcedSizes is used when a size is assigned to keep variants apart
var forcedSizes = []string{"S", "M", "L", "XL"}
