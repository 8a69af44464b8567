package config

type YAMLSheet struct {
	Name    string            `yaml:"name"`
	Vars    map[string]string `yaml:"vars"`
	Queries []YAMLQuery       `yaml:"queries"`
}

type YAMLQuery struct {
	Name string   `yaml:"name"`
	Op   string   `yaml:"op"`
	Args []string `yaml:"args"`

	// Expect is shorthand for assert.result.
	Expect      *string `yaml:"expect"`
	ExpectError string  `yaml:"expect_error"`

	Assert  YAMLAssertions    `yaml:"assert"`
	Extract map[string]string `yaml:"extract"`
}

type YAMLAssertions struct {
	Result *string `yaml:"result"`

	JSONPath map[string]YAMLJSONPathAssertion `yaml:"jsonpath"`
}

type YAMLJSONPathAssertion struct {
	Exists   bool     `yaml:"exists"`
	Eq       *string  `yaml:"eq"`
	Contains *string  `yaml:"contains"`
	Matches  *string  `yaml:"matches"`
	Gt       *float64 `yaml:"gt"`
	Lt       *float64 `yaml:"lt"`
}
