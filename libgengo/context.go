package libgengo

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

func isRosPackage(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, "package.xml"))
	return err == nil
}

// findDefinitions walks rosPkgPaths for ROS packages and maps the full
// name of every definition in their sub directory dir with extension ext
// to its path.
func findDefinitions(rosPkgPaths []string, dir, ext string) map[string]string {
	found := make(map[string]string)
	walk := func(path string, info os.FileInfo, err error) error {
		if err != nil || !info.IsDir() {
			return nil
		}
		if !isRosPackage(path) {
			return nil
		}
		pkgName := filepath.Base(path)
		files, _ := filepath.Glob(filepath.Join(path, dir, "*"+ext))
		for _, f := range files {
			name := strings.TrimSuffix(filepath.Base(f), ext)
			found[pkgName+"/"+name] = f
		}
		// Packages do not nest.
		return filepath.SkipDir
	}
	for _, p := range rosPkgPaths {
		if p == "" {
			continue
		}
		_ = filepath.Walk(p, walk)
	}
	return found
}

// MsgContext resolves definitions by full name and caches parsed
// messages.
type MsgContext struct {
	msgPathMap  map[string]string
	srvPathMap  map[string]string
	msgRegistry map[string]*MsgSpec
}

// NewMsgContext indexes the message and service definitions of every ROS
// package below rosPkgPaths.
func NewMsgContext(rosPkgPaths []string) *MsgContext {
	return &MsgContext{
		msgPathMap:  findDefinitions(rosPkgPaths, "msg", ".msg"),
		srvPathMap:  findDefinitions(rosPkgPaths, "srv", ".srv"),
		msgRegistry: make(map[string]*MsgSpec),
	}
}

// Msgs returns the full names of the indexed message definitions.
func (ctx *MsgContext) Msgs() []string {
	names := make([]string, 0, len(ctx.msgPathMap))
	for name := range ctx.msgPathMap {
		names = append(names, name)
	}
	return names
}

func (ctx *MsgContext) Register(fullname string, spec *MsgSpec) {
	ctx.msgRegistry[fullname] = spec
}

// LoadMsgFromString parses text as the message fullname, computes its MD5
// sum and registers it.
func (ctx *MsgContext) LoadMsgFromString(text string, fullname string) (*MsgSpec, error) {
	spec, err := parseMsg(text, fullname)
	if err != nil {
		return nil, err
	}
	md5sum, err := ctx.ComputeMsgMD5(spec)
	if err != nil {
		return nil, err
	}
	spec.MD5Sum = md5sum
	ctx.Register(fullname, spec)
	return spec, nil
}

func (ctx *MsgContext) LoadMsgFromFile(filePath string, fullname string) (*MsgSpec, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", fullname)
	}
	return ctx.LoadMsgFromString(string(data), fullname)
}

func (ctx *MsgContext) LoadMsg(fullname string) (*MsgSpec, error) {
	if spec, ok := ctx.msgRegistry[fullname]; ok {
		return spec, nil
	}
	path, ok := ctx.msgPathMap[fullname]
	if !ok {
		return nil, errors.Errorf("message definition of %s is not found", fullname)
	}
	return ctx.LoadMsgFromFile(path, fullname)
}

// LoadSrvFromString parses text as the service fullname. The request and
// response are registered as fullname+"Request" and fullname+"Response".
func (ctx *MsgContext) LoadSrvFromString(text string, fullname string) (*SrvSpec, error) {
	packageName, shortName, err := packageResourceName(fullname)
	if err != nil {
		return nil, err
	}
	reqText, resText, err := splitSrv(text)
	if err != nil {
		return nil, &SyntaxError{fullname, 0, err.Error()}
	}
	req, err := ctx.LoadMsgFromString(reqText, fullname+"Request")
	if err != nil {
		return nil, err
	}
	res, err := ctx.LoadMsgFromString(resText, fullname+"Response")
	if err != nil {
		return nil, err
	}
	spec := &SrvSpec{
		Package:   packageName,
		ShortName: shortName,
		FullName:  fullname,
		Text:      text,
		Request:   req,
		Response:  res,
	}
	if spec.MD5Sum, err = ctx.ComputeSrvMD5(spec); err != nil {
		return nil, err
	}
	return spec, nil
}

func (ctx *MsgContext) LoadSrvFromFile(filePath string, fullname string) (*SrvSpec, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", fullname)
	}
	return ctx.LoadSrvFromString(string(data), fullname)
}

func (ctx *MsgContext) LoadSrv(fullname string) (*SrvSpec, error) {
	path, ok := ctx.srvPathMap[fullname]
	if !ok {
		return nil, errors.Errorf("service definition of %s is not found", fullname)
	}
	return ctx.LoadSrvFromFile(path, fullname)
}

// ComputeMD5Text returns the canonical text the MD5 sum of spec is taken
// over: constants first, then fields, with every message type replaced by
// its own MD5 sum.
func (ctx *MsgContext) ComputeMD5Text(spec *MsgSpec) (string, error) {
	var b strings.Builder
	for _, c := range spec.Constants {
		fmt.Fprintln(&b, c.String())
	}
	for _, f := range spec.Fields {
		if f.IsBuiltin {
			fmt.Fprintln(&b, f.String())
			continue
		}
		sub, err := ctx.LoadMsg(f.FullType())
		if err != nil {
			return "", errors.Wrapf(err, "resolve field %s of %s", f.Name, spec.FullName)
		}
		fmt.Fprintf(&b, "%s %s\n", sub.MD5Sum, f.Name)
	}
	return strings.TrimSpace(b.String()), nil
}

func (ctx *MsgContext) ComputeMsgMD5(spec *MsgSpec) (string, error) {
	text, err := ctx.ComputeMD5Text(spec)
	if err != nil {
		return "", err
	}
	sum := md5.Sum([]byte(text))
	return hex.EncodeToString(sum[:]), nil
}

func (ctx *MsgContext) ComputeSrvMD5(spec *SrvSpec) (string, error) {
	reqText, err := ctx.ComputeMD5Text(spec.Request)
	if err != nil {
		return "", err
	}
	resText, err := ctx.ComputeMD5Text(spec.Response)
	if err != nil {
		return "", err
	}
	sum := md5.Sum([]byte(reqText + resText))
	return hex.EncodeToString(sum[:]), nil
}
