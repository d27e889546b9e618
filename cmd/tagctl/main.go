// Command tagctl is a thin CLI front end over the client endpoint,
// mirroring kr/kr.go's urfave/cli command table.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/urfave/cli"

	"fillwire.dev/fillwire/client"
	"fillwire.dev/fillwire/config"
	"fillwire.dev/fillwire/internal/obslog"
	"fillwire.dev/fillwire/internal/version"
)

var errColor = color.New(color.FgRed)
var okColor = color.New(color.FgGreen)

func fatalf(format string, args ...interface{}) {
	errColor.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func dial(c *cli.Context) *client.Client {
	cfg := client.DefaultConfig(c.GlobalString("host"))
	if port := c.GlobalInt("port"); port != 0 {
		cfg.Port = port
	}
	cfg.HeartbeatEnabled = false
	cl := client.New(cfg, client.WithLogger(obslog.New("tagctl")))
	if err := cl.Connect(); err != nil {
		fatalf("connect: %s", err)
	}
	return cl
}

func pingCommand(c *cli.Context) error {
	cl := dial(c)
	defer cl.Disconnect()
	if err := cl.NoOp(); err != nil {
		fatalf("ping: %s", err)
	}
	okColor.Println("ok")
	return nil
}

func tagIDArg(c *cli.Context) uint16 {
	n, err := strconv.ParseUint(c.Args().First(), 10, 16)
	if err != nil {
		fatalf("invalid tag id %q: %s", c.Args().First(), err)
	}
	return uint16(n)
}

func readCommand(c *cli.Context) error {
	cl := dial(c)
	defer cl.Disconnect()
	tagID := tagIDArg(c)
	switch c.String("type") {
	case "int":
		v, err := cl.ReadInt(tagID)
		if err != nil {
			fatalf("read: %s", err)
		}
		fmt.Println(v)
	case "uint":
		v, err := cl.ReadUint(tagID)
		if err != nil {
			fatalf("read: %s", err)
		}
		fmt.Println(v)
	case "float":
		v, err := cl.ReadFloat(tagID)
		if err != nil {
			fatalf("read: %s", err)
		}
		fmt.Println(v)
	case "string":
		v, err := cl.ReadString(tagID)
		if err != nil {
			fatalf("read: %s", err)
		}
		fmt.Println(v)
	default:
		fatalf("unknown --type %q (want int, uint, float, or string)", c.String("type"))
	}
	return nil
}

func writeCommand(c *cli.Context) error {
	cl := dial(c)
	defer cl.Disconnect()
	tagID := tagIDArg(c)
	value := c.Args().Get(1)
	var err error
	switch c.String("type") {
	case "int":
		var v int64
		v, err = strconv.ParseInt(value, 10, 32)
		if err == nil {
			err = cl.WriteInt(tagID, int32(v))
		}
	case "uint":
		var v uint64
		v, err = strconv.ParseUint(value, 10, 32)
		if err == nil {
			err = cl.WriteUint(tagID, uint32(v))
		}
	case "float":
		var v float64
		v, err = strconv.ParseFloat(value, 32)
		if err == nil {
			err = cl.WriteFloat(tagID, float32(v))
		}
	case "string":
		err = cl.WriteString(tagID, value)
	default:
		fatalf("unknown --type %q (want int, uint, float, or string)", c.String("type"))
	}
	if err != nil {
		fatalf("write: %s", err)
	}
	okColor.Println("ok")
	return nil
}

func main() {
	config.LoadEnvFile(".env")

	app := cli.NewApp()
	app.Name = "tagctl"
	app.Usage = "talk to a fillwire tag server"
	app.Version = version.Current.String()
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "host", Usage: "server host"},
		cli.IntFlag{Name: "port", Value: 5000, Usage: "server port"},
	}
	app.Commands = []cli.Command{
		{
			Name:   "ping",
			Usage:  "send a NoOp and confirm the server is alive",
			Action: pingCommand,
		},
		{
			Name:      "read",
			Usage:     "read a tag's value",
			ArgsUsage: "<tag-id>",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "type", Value: "int", Usage: "int, uint, float, or string"},
			},
			Action: readCommand,
		},
		{
			Name:      "write",
			Usage:     "write a tag's value",
			ArgsUsage: "<tag-id> <value>",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "type", Value: "int", Usage: "int, uint, float, or string"},
			},
			Action: writeCommand,
		},
	}
	if err := app.Run(os.Args); err != nil {
		fatalf("%s", err)
	}
}
