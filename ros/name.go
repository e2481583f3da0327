package ros

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

const (
	Sep       = "/"
	GlobalNS  = "/"
	PrivateNS = "~"
	// Remap separates the two sides of a command-line remapping argument.
	Remap = ":="
)

var (
	validName      = regexp.MustCompile(`^[~/]?([a-zA-Z]\w*/)*[a-zA-Z]\w*/?$`)
	validNamespace = regexp.MustCompile(`^/([a-zA-Z]\w*/)*$`)
)

// NameMap maps names to names; used for remappings and argument parameters.
type NameMap map[string]string

func isValidName(name string) bool {
	if name == "" || name == GlobalNS || name == PrivateNS {
		return true
	}
	return validName.MatchString(name)
}

func isValidNamespace(name string) bool {
	return validNamespace.MatchString(name)
}

func isGlobalName(name string) bool {
	return strings.HasPrefix(name, GlobalNS)
}

func isPrivateName(name string) bool {
	return strings.HasPrefix(name, PrivateNS)
}

// canonicalizeName removes empty components ("//") and trailing separators.
func canonicalizeName(name string) string {
	if name == "" || name == GlobalNS {
		return name
	}
	var components []string
	for _, c := range strings.Split(name, Sep) {
		if c != "" {
			components = append(components, c)
		}
	}
	joined := strings.Join(components, Sep)
	if isGlobalName(name) {
		return GlobalNS + joined
	}
	return joined
}

// getNamespace returns the parent namespace of name, always ending in "/".
func getNamespace(name string) string {
	name = strings.TrimSuffix(canonicalizeName(name), Sep)
	i := strings.LastIndex(name, Sep)
	if i < 0 {
		return GlobalNS
	}
	return name[:i+1]
}

// qualifyNodeName splits a node name into its namespace and base name.
func qualifyNodeName(nodeName string) (string, string, error) {
	if nodeName == "" {
		return "", "", errors.New("empty node name")
	}
	if isPrivateName(nodeName) {
		return "", "", errors.Errorf("node name %q must not be private", nodeName)
	}
	if !isValidName(nodeName) {
		return "", "", errors.Errorf("invalid node name %q", nodeName)
	}
	canon := strings.TrimPrefix(canonicalizeName(nodeName), GlobalNS)
	components := strings.Split(canon, Sep)
	last := len(components) - 1
	if last == 0 {
		return GlobalNS, components[0], nil
	}
	return GlobalNS + strings.Join(components[:last], Sep), components[last], nil
}

// resolveName expands name against the fully qualified node name.
func resolveName(name string, nodeName string) string {
	if name == "" {
		return getNamespace(nodeName)
	}
	canon := canonicalizeName(name)
	switch {
	case isGlobalName(canon):
		return canon
	case isPrivateName(canon):
		return canonicalizeName(nodeName + Sep + canon[1:])
	default:
		return getNamespace(nodeName) + canon
	}
}

// NameResolver resolves graph resource names for a node, applying remappings.
type NameResolver struct {
	nodeName string
	mapping  NameMap
}

func newNameResolver(namespace string, nodeName string, remapping NameMap) *NameResolver {
	n := &NameResolver{
		nodeName: canonicalizeName(GlobalNS + namespace + Sep + nodeName),
		mapping:  make(NameMap),
	}
	for k, v := range remapping {
		n.mapping[resolveName(k, n.nodeName)] = resolveName(v, n.nodeName)
	}
	return n
}

func (n *NameResolver) resolve(name string) string {
	resolved := resolveName(name, n.nodeName)
	if remapped, ok := n.mapping[resolved]; ok {
		return remapped
	}
	return resolved
}
