// Command gengo generates Go message and service types from ROS
// definitions found below ROS_PACKAGE_PATH.
//
// Usage:
//
//	gengo [--out DIR] [--import-prefix PATH] msg|srv NAME...
package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/rosgo/frametarget/libgengo"
)

const (
	flagOut          = "out"
	flagImportPrefix = "import-prefix"
	flagRosImport    = "ros-import"
	flagPackagePath  = "ros-package-path"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logrus.WithError(err).Error("Generation failed")
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:            "gengo",
		Usage:           "generate Go types from ROS message and service definitions",
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  flagOut,
				Value: "msgs",
				Usage: "directory the package directories are created in",
			},
			&cli.StringFlag{
				Name:  flagImportPrefix,
				Value: "github.com/rosgo/frametarget/msgs",
				Usage: "import path of the output directory",
			},
			&cli.StringFlag{
				Name:  flagRosImport,
				Value: libgengo.DefaultRosImport,
				Usage: "import path of the ros package",
			},
			&cli.StringFlag{
				Name:    flagPackagePath,
				Usage:   "colon separated directories searched for ROS packages",
				EnvVars: []string{"ROS_PACKAGE_PATH"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "msg",
				Usage:     "generate message types",
				ArgsUsage: "NAME...",
				Action: func(c *cli.Context) error {
					g := newGenerator(c)
					return forEach(c, g.message)
				},
			},
			{
				Name:      "srv",
				Usage:     "generate service types with their request and response",
				ArgsUsage: "NAME...",
				Action: func(c *cli.Context) error {
					g := newGenerator(c)
					return forEach(c, g.service)
				},
			},
		},
	}
}

func forEach(c *cli.Context, generate func(string) error) error {
	if c.NArg() == 0 {
		return errors.Errorf("%s needs at least one definition name", c.Command.Name)
	}
	for _, name := range c.Args().Slice() {
		if err := generate(name); err != nil {
			return errors.Wrapf(err, "generate %s", name)
		}
	}
	return nil
}

type generator struct {
	ctx    *libgengo.MsgContext
	out    string
	opts   libgengo.Options
	logger *logrus.Entry
}

func newGenerator(c *cli.Context) *generator {
	paths := strings.Split(c.String(flagPackagePath), ":")
	return &generator{
		ctx: libgengo.NewMsgContext(paths),
		out: c.String(flagOut),
		opts: libgengo.Options{
			ImportPrefix: c.String(flagImportPrefix),
			RosImport:    c.String(flagRosImport),
		},
		logger: logrus.WithField("module", "gengo"),
	}
}

func (g *generator) message(name string) error {
	spec, err := g.ctx.LoadMsg(name)
	if err != nil {
		return err
	}
	code, err := libgengo.GenerateMessage(spec, g.opts)
	if err != nil {
		return err
	}
	return g.write(spec.Package, spec.ShortName, code)
}

func (g *generator) service(name string) error {
	spec, err := g.ctx.LoadSrv(name)
	if err != nil {
		return err
	}
	srv, req, res, err := libgengo.GenerateService(spec, g.opts)
	if err != nil {
		return err
	}
	for _, f := range []struct {
		name string
		code []byte
	}{
		{spec.ShortName, srv},
		{spec.Request.ShortName, req},
		{spec.Response.ShortName, res},
	} {
		if err := g.write(spec.Package, f.name, f.code); err != nil {
			return err
		}
	}
	return nil
}

func (g *generator) write(pkg, shortName string, code []byte) error {
	dir := filepath.Join(g.out, pkg)
	if err := os.MkdirAll(dir, 0o775); err != nil {
		return errors.Wrap(err, "create package directory")
	}
	path := filepath.Join(dir, shortName+".go")
	if err := os.WriteFile(path, code, 0o664); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	g.logger.WithField("file", path).Info("Generated")
	return nil
}
