package main

import (
	"gopkg.in/urfave/cli.v1"
)

var (
	configFileFlag = cli.StringFlag{
		Name:  "config",
		Usage: "YAML configuration file (default: config.yml)",
	}
	addressFlag = cli.StringFlag{
		Name:  "address",
		Usage: "Address to watch or inspect (0x...)",
	}
	recipientFlag = cli.StringFlag{
		Name:  "recipient",
		Usage: "Alert recipient: email address, Discord channel ID or Kafka key",
	}
	methodFlag = cli.StringFlag{
		Name:  "method",
		Usage: "Method signature to count, e.g. \"transfer(address,uint256)\"",
	}
	limitFlag = cli.Uint64Flag{
		Name:  "limit",
		Usage: "Alert when more than this many matching calls fall in the window",
	}
	windowFlag = cli.Uint64Flag{
		Name:  "window",
		Usage: "Trailing window size in blocks (default from config, 240)",
	}
	intervalFlag = cli.DurationFlag{
		Name:  "interval",
		Usage: "Evaluation interval (default from config, 30s)",
	}
	eventFlag = cli.StringFlag{
		Name:  "event",
		Usage: "Event signature to listen for, e.g. \"Transfer(address,address,uint256)\"",
	}
	startFlag = cli.Uint64Flag{
		Name:  "start",
		Usage: "First block of the range (inclusive)",
	}
	endFlag = cli.Uint64Flag{
		Name:  "end",
		Usage: "Last block of the range (inclusive)",
	}
	allFlag = cli.BoolFlag{
		Name:  "all",
		Usage: "Print direct and internal transactions",
	}
	normalFlag = cli.BoolFlag{
		Name:  "normal",
		Usage: "Print direct transactions only",
	}
	internalFlag = cli.BoolFlag{
		Name:  "internal",
		Usage: "Print internal transactions only",
	}
	mixFlag = cli.BoolFlag{
		Name:  "mix",
		Usage: "Report whether the address interacted with a known mixing service",
	}
)
