package switchset

import (
	"fmt"
	"strings"
)

// ParseOverride parses one NAME=VALUE override as supplied on the
// command line. VALUE accepts the directive grammar's boolean
// spellings: 0, 1, true, false.
func ParseOverride(arg string) (name string, value bool, err error) {
	eq := strings.IndexByte(arg, '=')
	if eq <= 0 || eq == len(arg)-1 {
		return "", false, fmt.Errorf("invalid switch override %q, expected NAME=0|1", arg)
	}
	name = arg[:eq]
	switch arg[eq+1:] {
	case "1", "true":
		return name, true, nil
	case "0", "false":
		return name, false, nil
	}
	return "", false, fmt.Errorf("invalid switch override value in %q, expected 0|1|true|false", arg)
}

// ParseOverrides folds repeated NAME=VALUE arguments into one map.
// Later arguments win over earlier ones.
func ParseOverrides(args []string, into map[string]bool) (map[string]bool, error) {
	if into == nil {
		into = make(map[string]bool, len(args))
	}
	for _, arg := range args {
		name, value, err := ParseOverride(arg)
		if err != nil {
			return nil, err
		}
		into[name] = value
	}
	return into, nil
}
