package main

import (
	"log"
	"os"
	"time"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "agentctl",
		Usage: "Build and deploy the agentic API service on AWS",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "profile",
				Usage: "AWS credential profile name (e.g., dev, prod)",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Initialize a project: state bucket, lock table, default declaration",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "project",
						Usage:    "Project name",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "non-interactive",
						Usage: "Skip setup prompts (certificate, roles, environment)",
					},
				},
				Action: initCommand,
			},
			{
				Name:  "validate",
				Usage: "Statically check the declaration and build recipe",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "project",
						Usage:    "Project name",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "dockerfile",
						Usage: "Path to a Dockerfile to cross-check (default: built-in recipe)",
					},
				},
				Action: validateCommand,
			},
			{
				Name:  "render",
				Usage: "Write the Dockerfile and Terraform sources to a directory for inspection",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "project",
						Usage:    "Project name",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "dir",
						Usage: "Output directory",
						Value: "./rendered",
					},
					&cli.StringFlag{
						Name:  "dockerfile",
						Usage: "Path to a Dockerfile to copy through (default: built-in recipe)",
					},
				},
				Action: renderCommand,
			},
			{
				Name:  "build",
				Usage: "Build the container image and push it to ECR",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "project",
						Usage:    "Project name",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "context",
						Usage: "Build context directory",
						Value: ".",
					},
					&cli.StringFlag{
						Name:  "tag",
						Usage: "Image tag label (default: timestamp)",
					},
					&cli.StringFlag{
						Name:  "dockerfile",
						Usage: "Path to a Dockerfile (default: built-in recipe)",
					},
					&cli.BoolFlag{
						Name:  "push",
						Usage: "Push to ECR and record the image in the declaration",
					},
				},
				Action: buildCommand,
			},
			{
				Name:  "plan",
				Usage: "Show the infrastructure changes a deploy would make",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "project",
						Usage:    "Project name",
						Required: true,
					},
				},
				Action: planCommand,
			},
			{
				Name:  "deploy",
				Usage: "Converge AWS infrastructure to the declaration",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "project",
						Usage:    "Project name",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "skip-confirmation",
						Usage: "Apply without the interactive plan confirmation",
					},
					&cli.StringFlag{
						Name:  "policy",
						Usage: "Path to a JavaScript policy script evaluated against the plan",
						Value: "agentctl.policy.js",
					},
					&cli.StringFlag{
						Name:  "dockerfile",
						Usage: "Path to the Dockerfile the image was built from (default: built-in recipe)",
					},
				},
				Action: deployCommand,
			},
			{
				Name:  "scale",
				Usage: "Set the running task count within the declared scaling band",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "project",
						Usage:    "Project name",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "count",
						Usage: "Desired task count",
					},
					&cli.IntFlag{
						Name:  "min",
						Usage: "New autoscaling minimum capacity",
					},
					&cli.IntFlag{
						Name:  "max",
						Usage: "New autoscaling maximum capacity",
					},
				},
				Action: scaleCommand,
			},
			{
				Name:   "projects",
				Usage:  "List every project with state storage in this account",
				Action: projectsCommand,
			},
			{
				Name:  "history",
				Usage: "List the declaration version history for a project",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "project",
						Usage:    "Project name",
						Required: true,
					},
				},
				Action: historyCommand,
			},
			{
				Name:  "status",
				Usage: "Show deployment and runtime status",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "project",
						Usage:    "Project name",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "detailed",
						Usage: "Include per-task and per-target detail",
					},
				},
				Action: statusCommand,
			},
			{
				Name:  "secrets",
				Usage: "Manage the service's secret parameters",
				Subcommands: []*cli.Command{
					{
						Name:  "check",
						Usage: "Verify every declared secret parameter exists",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:     "project",
								Usage:    "Project name",
								Required: true,
							},
						},
						Action: secretsCheckCommand,
					},
					{
						Name:  "list",
						Usage: "List the project's secret parameter names (never values)",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:     "project",
								Usage:    "Project name",
								Required: true,
							},
						},
						Action: secretsListCommand,
					},
					{
						Name:  "put",
						Usage: "Store one secret value in the parameter store",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:     "project",
								Usage:    "Project name",
								Required: true,
							},
							&cli.StringFlag{
								Name:     "name",
								Usage:    "Secret environment variable name (e.g., OPENAI_API_KEY)",
								Required: true,
							},
						},
						Action: secretsPutCommand,
					},
				},
			},
			{
				Name:  "logs",
				Usage: "Tail recent application logs from CloudWatch",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "project",
						Usage:    "Project name",
						Required: true,
					},
					&cli.DurationFlag{
						Name:  "since",
						Usage: "How far back to read (e.g., 15m, 2h)",
						Value: 15 * time.Minute,
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of events",
						Value: 100,
					},
				},
				Action: logsCommand,
			},
			{
				Name:  "destroy",
				Usage: "Tear down the deployed infrastructure",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "project",
						Usage:    "Project name",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Skip confirmations",
					},
					&cli.BoolFlag{
						Name:  "purge",
						Usage: "Also delete the project's state bucket and lock table",
					},
				},
				Action: destroyCommand,
			},
			{
				Name:   "help",
				Usage:  "Show detailed help and workflow documentation",
				Action: showDetailedHelp,
			},
		},
		Action: func(c *cli.Context) error {
			return cli.ShowAppHelp(c)
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
