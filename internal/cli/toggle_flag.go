package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	toggleFlagTypeName        = "bool"
	toggleAcceptedValues      = "true, false, yes, no, on, off, 1, 0"
	invalidToggleValueMessage = "invalid value %q for --%s (accepted: %s)"
	argumentTerminator        = "--"
	longFlagPrefix            = "--"
)

// toggleLiterals lists the spellings snapsource accepts for on/off flags.
var toggleLiterals = map[string]bool{
	"true":  true,
	"yes":   true,
	"on":    true,
	"1":     true,
	"false": false,
	"no":    false,
	"off":   false,
	"0":     false,
}

func parseToggle(input string) (bool, bool) {
	enabled, known := toggleLiterals[strings.ToLower(strings.TrimSpace(input))]
	return enabled, known
}

// toggleValue is a pflag.Value for switches such as --compress, --tree and --copy.
// A bare flag turns the switch on; "--tree off" and "--tree=off" turn it off.
type toggleValue struct {
	target *bool
	name   string
}

func (value *toggleValue) Set(input string) error {
	enabled, known := parseToggle(input)
	if !known {
		return fmt.Errorf(invalidToggleValueMessage, input, value.name, toggleAcceptedValues)
	}
	*value.target = enabled
	return nil
}

func (value *toggleValue) String() string {
	if value.target == nil {
		return strconv.FormatBool(false)
	}
	return strconv.FormatBool(*value.target)
}

func (value *toggleValue) Type() string {
	return toggleFlagTypeName
}

// registerToggleFlag binds target to a switch flag initialized to defaultValue.
func registerToggleFlag(flagSet *pflag.FlagSet, target *bool, name string, defaultValue bool, usage string) {
	*target = defaultValue
	flagSet.Var(&toggleValue{target: target, name: name}, name, usage)
	registered := flagSet.Lookup(name)
	registered.DefValue = strconv.FormatBool(defaultValue)
	registered.NoOptDefVal = strconv.FormatBool(true)
}

// normalizeToggleArguments joins "--flag value" into "--flag=value" for every toggle
// flag of the command tree when value is a toggle literal. Any other following
// argument stays positional, so "copy --copy src" keeps src as an input path.
func normalizeToggleArguments(rootCommand *cobra.Command, arguments []string) []string {
	toggleNames := make(map[string]struct{})
	collectToggleNames(rootCommand, toggleNames)

	normalized := make([]string, 0, len(arguments))
	for index := 0; index < len(arguments); index++ {
		argument := arguments[index]
		if argument == argumentTerminator {
			return append(normalized, arguments[index:]...)
		}
		flagName, isLongFlag := strings.CutPrefix(argument, longFlagPrefix)
		_, isToggle := toggleNames[flagName]
		if !isLongFlag || !isToggle || index+1 >= len(arguments) {
			normalized = append(normalized, argument)
			continue
		}
		if _, known := parseToggle(arguments[index+1]); !known {
			normalized = append(normalized, argument)
			continue
		}
		normalized = append(normalized, argument+"="+arguments[index+1])
		index++
	}
	return normalized
}

func collectToggleNames(command *cobra.Command, names map[string]struct{}) {
	record := func(flag *pflag.Flag) {
		if _, isToggle := flag.Value.(*toggleValue); isToggle {
			names[flag.Name] = struct{}{}
		}
	}
	command.PersistentFlags().VisitAll(record)
	command.Flags().VisitAll(record)
	for _, child := range command.Commands() {
		collectToggleNames(child, names)
	}
}
