package libgengo

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/rosgo/frametarget/msgs/cob_srvs"
	"github.com/rosgo/frametarget/msgs/geometry_msgs"
	"github.com/rosgo/frametarget/msgs/std_msgs"
	"github.com/rosgo/frametarget/msgs/std_srvs"
	"github.com/rosgo/frametarget/msgs/tf2_msgs"
	vm "github.com/rosgo/frametarget/msgs/visualization_msgs"
	"github.com/rosgo/frametarget/ros"
)

var knownMsgs = []ros.MessageType{
	std_msgs.MsgHeader,
	std_msgs.MsgColorRGBA,
	geometry_msgs.MsgPoint,
	geometry_msgs.MsgQuaternion,
	geometry_msgs.MsgVector3,
	geometry_msgs.MsgPose,
	geometry_msgs.MsgPoseStamped,
	geometry_msgs.MsgTransform,
	geometry_msgs.MsgTransformStamped,
	tf2_msgs.MsgTFMessage,
	vm.MsgMarker,
	vm.MsgMenuEntry,
	vm.MsgInteractiveMarkerControl,
	vm.MsgInteractiveMarker,
	vm.MsgInteractiveMarkerPose,
	vm.MsgInteractiveMarkerUpdate,
	vm.MsgInteractiveMarkerInit,
	vm.MsgInteractiveMarkerFeedback,
}

var knownSrvs = []ros.ServiceType{
	std_srvs.SrvEmpty,
	cob_srvs.SrvSetString,
}

func srvText(srv ros.ServiceType) string {
	return srv.RequestType().Text() + "---\n" + srv.ResponseType().Text()
}

func writeDefinition(t *testing.T, root, fullname, kind, text string) {
	t.Helper()
	pkg, name, err := packageResourceName(fullname)
	if err != nil {
		t.Fatal(err)
	}
	dir := filepath.Join(root, pkg, kind)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, pkg, "package.xml"), []byte("<package/>"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, name+"."+kind), []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}
}

// newKnownContext lays out the definitions of the bundled messages as a
// ROS package tree.
func newKnownContext(t *testing.T) *MsgContext {
	t.Helper()
	root := t.TempDir()
	for _, m := range knownMsgs {
		writeDefinition(t, root, m.Name(), "msg", m.Text())
	}
	for _, s := range knownSrvs {
		writeDefinition(t, root, s.Name(), "srv", srvText(s))
	}
	return NewMsgContext([]string{root})
}

func TestFindDefinitions(t *testing.T) {
	ctx := newKnownContext(t)
	got := ctx.Msgs()
	sort.Strings(got)
	var want []string
	for _, m := range knownMsgs {
		want = append(want, m.Name())
	}
	sort.Strings(want)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("indexed messages mismatch (-want +got):\n%s", diff)
	}
}

func TestMessageMD5(t *testing.T) {
	ctx := newKnownContext(t)
	for _, m := range knownMsgs {
		t.Run(strings.ReplaceAll(m.Name(), "/", "_"), func(t *testing.T) {
			spec, err := ctx.LoadMsg(m.Name())
			if err != nil {
				t.Fatalf("Failed to parse: %v", err)
			}
			if spec.MD5Sum != m.MD5Sum() {
				t.Errorf("md5sum = %s, want %s", spec.MD5Sum, m.MD5Sum())
			}
		})
	}
}

func TestServiceMD5(t *testing.T) {
	ctx := newKnownContext(t)
	for _, s := range knownSrvs {
		spec, err := ctx.LoadSrv(s.Name())
		if err != nil {
			t.Fatalf("Failed to parse %s: %v", s.Name(), err)
		}
		if spec.MD5Sum != s.MD5Sum() {
			t.Errorf("%s md5sum = %s, want %s", s.Name(), spec.MD5Sum, s.MD5Sum())
		}
		if spec.Request.MD5Sum != s.RequestType().MD5Sum() {
			t.Errorf("%s request md5sum = %s, want %s", s.Name(), spec.Request.MD5Sum, s.RequestType().MD5Sum())
		}
		if spec.Response.MD5Sum != s.ResponseType().MD5Sum() {
			t.Errorf("%s response md5sum = %s, want %s", s.Name(), spec.Response.MD5Sum, s.ResponseType().MD5Sum())
		}
	}
}

func TestLoadMissingDefinition(t *testing.T) {
	ctx := NewMsgContext([]string{t.TempDir()})
	if _, err := ctx.LoadMsg("foo/Missing"); err == nil {
		t.Error("LoadMsg succeeded for an unknown message")
	}
	if _, err := ctx.LoadSrv("foo/Missing"); err == nil {
		t.Error("LoadSrv succeeded for an unknown service")
	}
	if _, err := ctx.LoadMsgFromString("foo/Missing field\n", "foo/Uses"); err == nil {
		t.Error("LoadMsgFromString succeeded with an unresolvable field")
	}
}
