package ros

import (
	"testing"
)

func TestNameValidation(t *testing.T) {
	positives := []string{
		"", "/", "~", "foo", "foo/", "foo/bar", "foo/bar/", "foo_0/bar1_/",
		"/foo", "/foo/", "/foo/bar", "/foo/bar/", "~foo", "~foo/", "~foo/bar", "~foo/bar/",
	}
	for _, p := range positives {
		if !isValidName(p) {
			t.Error(p)
		}
	}

	negatives := []string{
		"foo//bar", "^foo//bar", "//foo", "0foo", "_0foo", "foo/0bar", "foo/_bar", "foo/~bar", "foo bar",
	}
	for _, n := range negatives {
		if isValidName(n) {
			t.Error(n)
		}
	}
}

func TestNamespaceValidation(t *testing.T) {
	if !isValidNamespace("/") || !isValidNamespace("/foo/") {
		t.Fail()
	}
	if isValidNamespace("foo/") || isValidNamespace("/foo") || isValidNamespace("") {
		t.Fail()
	}
}

func TestCanonicalizeName(t *testing.T) {
	cases := [][2]string{
		{"/", "/"},
		{"/foo//bar/", "/foo/bar"},
		{"foo//bar///baz/", "foo/bar/baz"},
		{"~foo//bar///baz/", "~foo/bar/baz"},
		{"", ""},
	}
	for _, c := range cases {
		if got := canonicalizeName(c[0]); got != c[1] {
			t.Errorf("canonicalizeName(%q) = %q, want %q", c[0], got, c[1])
		}
	}
}

func TestSpecialNamespace(t *testing.T) {
	if !isGlobalName("/foo") || isGlobalName("~foo") || isGlobalName("foo") {
		t.Fail()
	}
	if isPrivateName("/foo") || !isPrivateName("~foo") || isPrivateName("foo") {
		t.Fail()
	}
}

func TestGetNamespace(t *testing.T) {
	cases := map[string]string{
		"":             "/",
		"/":            "/",
		"/foo":         "/",
		"/foo/":        "/",
		"/foo/bar":     "/foo/",
		"/foo/bar/baz": "/foo/bar/",
	}
	for in, expected := range cases {
		if got := getNamespace(in); got != expected {
			t.Errorf("getNamespace(%q) = %q, want %q", in, got, expected)
		}
	}
}

func TestQualifyNodeName(t *testing.T) {
	cases := []struct {
		in, ns, name string
	}{
		{"talker", "/", "talker"},
		{"/talker", "/", "talker"},
		{"/go/node2", "/go", "node2"},
		{"a/b/c", "/a/b", "c"},
	}
	for _, c := range cases {
		ns, name, err := qualifyNodeName(c.in)
		if err != nil {
			t.Fatalf("%s: %v", c.in, err)
		}
		if ns != c.ns || name != c.name {
			t.Errorf("qualifyNodeName(%q) = (%q, %q), want (%q, %q)", c.in, ns, name, c.ns, c.name)
		}
	}
	for _, bad := range []string{"", "~private", "0bad"} {
		if _, _, err := qualifyNodeName(bad); err == nil {
			t.Errorf("expected an error for %q", bad)
		}
	}
}

func TestResolution(t *testing.T) {
	cases := []struct {
		namespace, node string
		in, expected    string
	}{
		{"/", "node1", "bar", "/bar"},
		{"/", "node1", "/bar", "/bar"},
		{"/", "node1", "~bar", "/node1/bar"},
		{"/go", "node2", "bar", "/go/bar"},
		{"/go", "node2", "/bar", "/bar"},
		{"/go", "node2", "~bar", "/go/node2/bar"},
		{"/go", "node3", "foo/bar", "/go/foo/bar"},
		{"/go", "node3", "~foo/bar", "/go/node3/foo/bar"},
	}
	for _, c := range cases {
		resolver := newNameResolver(c.namespace, c.node, NameMap{})
		if got := resolver.resolve(c.in); got != c.expected {
			t.Errorf("%s%s: resolve(%q) = %q, want %q", c.namespace, c.node, c.in, got, c.expected)
		}
	}
}

func TestRemapping(t *testing.T) {
	cases := []struct {
		namespace string
		remapping NameMap
		in        string
		expected  string
	}{
		{"/", NameMap{"foo": "bar"}, "foo", "/bar"},
		{"/", NameMap{"foo": "bar"}, "/foo", "/bar"},
		{"/baz", NameMap{"foo": "bar"}, "foo", "/baz/bar"},
		{"/baz", NameMap{"foo": "bar"}, "/baz/foo", "/baz/bar"},
		{"/", NameMap{"/foo": "bar"}, "foo", "/bar"},
		{"/baz", NameMap{"/foo": "bar"}, "/foo", "/baz/bar"},
		{"/baz", NameMap{"/foo": "/a/b/c/bar"}, "/foo", "/a/b/c/bar"},
		{"/", NameMap{"start_tracking": "/arm/start_tracking"}, "start_tracking", "/arm/start_tracking"},
	}
	for _, c := range cases {
		resolver := newNameResolver(c.namespace, "mynode", c.remapping)
		if got := resolver.resolve(c.in); got != c.expected {
			t.Errorf("%v in %s: resolve(%q) = %q, want %q", c.remapping, c.namespace, c.in, got, c.expected)
		}
	}
}
