// 命令 platform-check：离线校验平台文件，输出可加载的记录数与被丢弃的行
package main

import (
	"context"
	"fmt"
	"os"

	"adcompass/internal/logger"

	"github.com/urfave/cli/v3"
)

func main() {
	l := logger.Setup()
	cmd := &cli.Command{
		Name:      "platform-check",
		Usage:     "validate an advertising platform file without loading it into a server",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "print the report as JSON"},
			&cli.BoolFlag{Name: "strict", Usage: "exit with status 2 if any line was skipped"},
			&cli.StringSliceFlag{Name: "search", Aliases: []string{"s"}, Usage: "location to match against the file (repeatable)"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return cli.Exit("exactly one file argument is required", 1)
			}
			path := cmd.Args().First()
			b, err := os.ReadFile(path)
			if err != nil {
				return cli.Exit(fmt.Sprintf("read %s: %v", path, err), 1)
			}
			res, err := check(string(b), cmd.StringSlice("search"))
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			if cmd.Bool("json") {
				err = res.writeJSON(os.Stdout)
			} else {
				err = res.writeText(os.Stdout)
			}
			if err != nil {
				return err
			}
			if cmd.Bool("strict") && len(res.Skipped) > 0 {
				return cli.Exit("", 2)
			}
			return nil
		},
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		l.Error("platform_check_error", "err", err)
		os.Exit(1)
	}
}
