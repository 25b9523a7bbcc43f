package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/urfave/cli/v2"

	"github.com/hiptraveler/agentctl/internal/cloud"
	awscloud "github.com/hiptraveler/agentctl/internal/cloud/aws"
	"github.com/hiptraveler/agentctl/internal/image"
	"github.com/hiptraveler/agentctl/internal/models"
	"github.com/hiptraveler/agentctl/internal/policy"
	"github.com/hiptraveler/agentctl/internal/prompts"
	"github.com/hiptraveler/agentctl/internal/terraform"
	"github.com/hiptraveler/agentctl/internal/validate"
)

// humanUptimeSince returns a compact human-readable duration like:
//
//	"45s", "12m", "1h 5m", "2d 3h"
func humanUptimeSince(t time.Time) string {
	d := time.Since(t)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	if d < 24*time.Hour {
		h := int(d.Hours())
		m := (int(d.Minutes()) % 60)
		if m == 0 {
			return fmt.Sprintf("%dh", h)
		}
		return fmt.Sprintf("%dh %dm", h, m)
	}
	days := int(d.Hours()) / 24
	h := int(d.Hours()) % 24
	if h == 0 {
		return fmt.Sprintf("%dd", days)
	}
	return fmt.Sprintf("%dd %dh", days, h)
}

// bindProject validates credentials and attaches the provider to an
// existing project. Most commands start here.
func bindProject(ctx context.Context, c *cli.Context) (*cloud.CloudManager, error) {
	manager := cloud.NewCloudManager(c.String("profile"))
	if err := manager.BindProject(ctx, c.String("project")); err != nil {
		return nil, err
	}
	return manager, nil
}

// awsProvider narrows the bound provider to its AWS implementation for
// runtime operations (scaling, log tailing, parameter listing).
func awsProvider(manager *cloud.CloudManager) (*awscloud.Provider, error) {
	provider, ok := manager.Provider.(*awscloud.Provider)
	if !ok {
		return nil, fmt.Errorf("runtime operations are only supported on AWS")
	}
	return provider, nil
}

// loadSpec returns the build recipe: a parsed Dockerfile when one was
// given, the built-in recipe aligned to the declaration otherwise.
func loadSpec(path string, top *models.Topology) (*image.Spec, error) {
	if path == "" {
		spec := image.DefaultSpec()
		spec.AlignTo(top.Compute.ContainerPort, top.Edge.HealthCheck.Path)
		return spec, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read Dockerfile: %w", err)
	}
	spec, err := image.Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("parse Dockerfile %s: %w", path, err)
	}
	return spec, nil
}

// printReport shows every finding and returns an error when any finding
// blocks deployment.
func printReport(project string, report *validate.Report) error {
	for _, f := range report.Findings {
		switch f.Severity {
		case validate.SeverityError:
			fmt.Printf("❌ %s\n", f.Message)
		default:
			fmt.Printf("⚠️  %s\n", f.Message)
		}
	}
	if err := report.Err(project); err != nil {
		return err
	}
	if len(report.Findings) == 0 {
		fmt.Println("✅ Declaration is consistent")
	}
	return nil
}

// initCommand bootstraps project storage and seeds the declaration
func initCommand(c *cli.Context) error {
	manager := cloud.NewCloudManager(c.String("profile"))
	return manager.Initialize(context.Background(), c.String("project"), !c.Bool("non-interactive"))
}

// validateCommand statically checks the declaration and build recipe
func validateCommand(c *cli.Context) error {
	ctx := context.Background()
	manager, err := bindProject(ctx, c)
	if err != nil {
		return err
	}

	top, err := manager.Provider.GetTopology(ctx)
	if err != nil {
		return err
	}
	spec, err := loadSpec(c.String("dockerfile"), top)
	if err != nil {
		return err
	}

	fmt.Printf("\n🔎 Validating declaration for: %s\n", c.String("project"))
	if err := printReport(c.String("project"), validate.Check(spec, top)); err != nil {
		return err
	}

	// Live checks: declared secret parameters and BYO roles must exist.
	missing, err := manager.Provider.VerifySecretParameters(ctx, top.SecretParameterNames())
	if err != nil {
		return err
	}
	for _, name := range missing {
		fmt.Printf("❌ secret parameter does not exist: %s\n", name)
	}
	roleErrs := 0
	for _, roleARN := range []string{top.Identity.ExecutionRoleARN, top.Identity.TaskRoleARN} {
		if err := manager.Provider.VerifyRole(ctx, roleARN); err != nil {
			fmt.Printf("❌ %v\n", err)
			roleErrs++
		}
	}
	if len(missing) > 0 || roleErrs > 0 {
		return fmt.Errorf("declaration references resources that do not exist")
	}
	fmt.Println("✅ All referenced secrets and roles exist")
	return nil
}

// renderCommand writes the Dockerfile and Terraform sources for inspection
func renderCommand(c *cli.Context) error {
	ctx := context.Background()
	manager, err := bindProject(ctx, c)
	if err != nil {
		return err
	}

	top, err := manager.Provider.GetTopology(ctx)
	if err != nil {
		return err
	}

	dir := c.String("dir")
	tfm := terraform.NewManager(top, manager.Provider.GetStorageName(), manager.Provider.GetLockTableName(), c.String("profile"))
	if err := tfm.Render(dir); err != nil {
		return err
	}

	spec, err := loadSpec(c.String("dockerfile"), top)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, "Dockerfile"), []byte(spec.Render()), 0644); err != nil {
		return fmt.Errorf("write Dockerfile: %w", err)
	}

	fmt.Printf("✅ Wrote Dockerfile and Terraform sources to %s\n", dir)
	return nil
}

// buildCommand builds the container image and pushes it to ECR
func buildCommand(c *cli.Context) error {
	ctx := context.Background()
	manager, err := bindProject(ctx, c)
	if err != nil {
		return err
	}
	provider, err := awsProvider(manager)
	if err != nil {
		return err
	}

	top, err := manager.Provider.GetTopology(ctx)
	if err != nil {
		return err
	}
	spec, err := loadSpec(c.String("dockerfile"), top)
	if err != nil {
		return err
	}
	if err := printReport(c.String("project"), validate.Check(spec, top)); err != nil {
		return err
	}

	tagLabel := c.String("tag")
	if tagLabel == "" {
		tagLabel = "v" + time.Now().UTC().Format("20060102-150405")
	}

	registry := image.NewRegistry(provider.AWSConfig)
	repoURI, err := registry.EnsureRepository(ctx, fmt.Sprintf("agentic-api-%s", c.String("project")))
	if err != nil {
		return err
	}
	fullTag := fmt.Sprintf("%s:%s", repoURI, tagLabel)

	builder, err := image.NewBuilder()
	if err != nil {
		return err
	}
	defer builder.Close()

	fmt.Printf("🐳 Building image %s\n", fullTag)
	if err := builder.Build(ctx, c.String("context"), spec, fullTag); err != nil {
		return err
	}

	if !c.Bool("push") {
		fmt.Printf("✅ Image built: %s (push with --push to record it for deploy)\n", fullTag)
		return nil
	}

	auth, err := registry.AuthConfig(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("📤 Pushing %s\n", fullTag)
	if err := builder.Push(ctx, fullTag, auth); err != nil {
		return err
	}

	top.Compute.ImageURI = fullTag
	if err := manager.Provider.SaveTopology(ctx, top); err != nil {
		return fmt.Errorf("image pushed but declaration update failed: %w", err)
	}

	fmt.Printf("✅ Image built and recorded: %s\n", fullTag)
	return nil
}

// planCommand shows the changes a deploy would make without applying them
func planCommand(c *cli.Context) error {
	ctx := context.Background()
	manager, err := bindProject(ctx, c)
	if err != nil {
		return err
	}

	top, err := manager.Provider.GetTopology(ctx)
	if err != nil {
		return err
	}

	tfm := terraform.NewManager(top, manager.Provider.GetStorageName(), manager.Provider.GetLockTableName(), c.String("profile"))
	summary, err := tfm.Plan(ctx)
	if err != nil {
		terraform.DisplayTerraformError("plan", err)
		return err
	}

	terraform.DisplayPlanSummary(c.String("project"), summary)
	return nil
}

// deployCommand converges AWS infrastructure to the declaration
func deployCommand(c *cli.Context) error {
	ctx := context.Background()
	projectName := c.String("project")

	fmt.Println("\nChecking Deployment Prerequisites")
	fmt.Println(strings.Repeat("=", 80))

	manager, err := bindProject(ctx, c)
	if err != nil {
		return err
	}

	top, err := manager.Provider.GetTopology(ctx)
	if err != nil {
		return err
	}

	spec, err := loadSpec(c.String("dockerfile"), top)
	if err != nil {
		return err
	}
	if err := printReport(projectName, validate.Check(spec, top)); err != nil {
		return err
	}
	if top.Compute.ImageURI == "" {
		return fmt.Errorf("no image recorded for project '%s'; run 'agentctl build' first", projectName)
	}

	fmt.Println("🔐 Verifying secret parameters...")
	missing, err := manager.Provider.VerifySecretParameters(ctx, top.SecretParameterNames())
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		fmt.Println("❌ Missing secret parameters:")
		for _, name := range missing {
			fmt.Printf("   • %s\n", name)
		}
		return fmt.Errorf("create them with 'agentctl secrets put' before deploying")
	}

	for _, roleARN := range []string{top.Identity.ExecutionRoleARN, top.Identity.TaskRoleARN} {
		if err := manager.Provider.VerifyRole(ctx, roleARN); err != nil {
			return err
		}
	}

	tfm := terraform.NewManager(top, manager.Provider.GetStorageName(), manager.Provider.GetLockTableName(), c.String("profile"))
	gate := func(summary *terraform.PlanSummary) error {
		terraform.DisplayPlanSummary(projectName, summary)
		if summary.NoChanges() {
			return nil
		}
		if err := policy.NewEngine(c.String("policy")).Evaluate(summary, top); err != nil {
			return err
		}
		if !c.Bool("skip-confirmation") {
			var confirmed bool
			if err := survey.AskOne(&survey.Confirm{
				Message: "Apply these changes?",
				Default: true,
			}, &confirmed); err != nil {
				return err
			}
			if !confirmed {
				return fmt.Errorf("deployment cancelled")
			}
		}
		return nil
	}

	outputs, err := tfm.Apply(ctx, gate)
	if err != nil {
		terraform.DisplayTerraformError("apply", err)
		return err
	}

	if err := manager.Provider.RecordOutputs(ctx, top.Compute.ImageURI, outputs); err != nil {
		fmt.Printf("⚠️  Deployed, but failed to record metadata: %v\n", err)
	}

	terraform.DisplayTerraformSuccess("deploy", projectName)
	terraform.DisplayInfrastructureInfo(projectName, outputs)
	return nil
}

// scaleCommand sets the running task count within the declared band and
// adjusts the band itself when asked to
func scaleCommand(c *cli.Context) error {
	if !c.IsSet("count") && !c.IsSet("min") && !c.IsSet("max") {
		return fmt.Errorf("nothing to do; pass --count, --min, or --max")
	}

	ctx := context.Background()
	manager, err := bindProject(ctx, c)
	if err != nil {
		return err
	}
	provider, err := awsProvider(manager)
	if err != nil {
		return err
	}

	top, err := manager.Provider.GetTopology(ctx)
	if err != nil {
		return err
	}
	md, err := manager.Provider.GetDeploymentMetadata(ctx)
	if err != nil {
		return err
	}
	if !md.IsDeployed() {
		return fmt.Errorf("project '%s' is not deployed; run 'agentctl deploy' first", c.String("project"))
	}

	if c.IsSet("min") || c.IsSet("max") {
		minCap, maxCap := top.Scaling.MinCapacity, top.Scaling.MaxCapacity
		if c.IsSet("min") {
			minCap = c.Int("min")
		}
		if c.IsSet("max") {
			maxCap = c.Int("max")
		}
		if minCap < 0 || maxCap < minCap {
			return fmt.Errorf("scaling band [%d, %d] is invalid", minCap, maxCap)
		}
		if err := provider.UpdateScalingBand(ctx, &md.Infrastructure, int32(minCap), int32(maxCap)); err != nil {
			return err
		}
		top.Scaling.MinCapacity = minCap
		top.Scaling.MaxCapacity = maxCap
		fmt.Printf("✅ Scaling band updated to [%d, %d]\n", minCap, maxCap)
	}

	if c.IsSet("count") {
		applied, err := provider.Scale(ctx, &md.Infrastructure, int32(c.Int("count")),
			int32(top.Scaling.MinCapacity), int32(top.Scaling.MaxCapacity))
		if err != nil {
			return err
		}
		top.Compute.DesiredCount = int(applied)
		fmt.Printf("✅ Service scaled to %d task(s)\n", applied)
	}

	if err := manager.Provider.SaveTopology(ctx, top); err != nil {
		fmt.Printf("⚠️  Scaled, but failed to record the change: %v\n", err)
	}
	return nil
}

// projectsCommand lists every project with state storage in the account
func projectsCommand(c *cli.Context) error {
	ctx := context.Background()
	manager := cloud.NewCloudManager(c.String("profile"))
	if err := manager.AutoDetectProvider(ctx); err != nil {
		return err
	}

	projects, err := manager.Provider.ListProjects(ctx)
	if err != nil {
		return err
	}
	if len(projects) == 0 {
		fmt.Println("No projects found. Create one with 'agentctl init --project <name>'.")
		return nil
	}

	fmt.Printf("📋 Projects (%d):\n", len(projects))
	for _, info := range projects {
		fmt.Printf("   • %-24s %s\n", info.ProjectID, info.StorageName)
	}
	return nil
}

// historyCommand lists the declaration version snapshots for a project
func historyCommand(c *cli.Context) error {
	ctx := context.Background()
	manager, err := bindProject(ctx, c)
	if err != nil {
		return err
	}

	versions, err := manager.Provider.ListTopologyVersions(ctx)
	if err != nil {
		return err
	}
	if len(versions) == 0 {
		fmt.Println("No declaration versions recorded yet.")
		return nil
	}

	fmt.Printf("🕓 Declaration history for %s:\n", c.String("project"))
	for _, v := range versions {
		fmt.Printf("   • %-16s %s  (%d bytes)\n",
			v.Version, v.CreatedAt.Local().Format("2006-01-02 15:04:05"), v.Size)
	}
	return nil
}

// statusCommand shows deployment and runtime status
func statusCommand(c *cli.Context) error {
	ctx := context.Background()
	projectName := c.String("project")

	fmt.Printf("\n🛰️  Checking infrastructure status for: %s\n", projectName)
	fmt.Println(strings.Repeat("━", 80))

	manager, err := bindProject(ctx, c)
	if err != nil {
		return err
	}
	provider, err := awsProvider(manager)
	if err != nil {
		return err
	}

	md, err := manager.Provider.GetDeploymentMetadata(ctx)
	if err != nil {
		return err
	}
	if !md.IsDeployed() {
		fmt.Println("❌ No infrastructure found for this project.")
		fmt.Printf("💡 Run 'agentctl deploy --project %s' to create it.\n", projectName)
		return nil
	}

	deployedAt := md.DeployedAt.UTC()
	fmt.Println("✅ Infrastructure is deployed.")
	fmt.Printf("🕓 Deployed At (Local): %s\n", deployedAt.Local().Format("2006-01-02 15:04:05 MST"))
	fmt.Printf("⏱️  Uptime: %s\n", humanUptimeSince(deployedAt))
	fmt.Printf("📦 Image: %s\n", md.ImageURI)
	fmt.Printf("🌐 Service URL: %s\n", md.Infrastructure.ServiceURL)

	runtime, err := provider.InspectRuntime(ctx, &md.Infrastructure)
	if err != nil {
		return err
	}

	fmt.Printf("\n📊 Service: %s (%s)\n", runtime.ServiceName, runtime.ServiceStatus)
	fmt.Printf("   Desired=%d Running=%d Pending=%d\n", runtime.DesiredCount, runtime.RunningCount, runtime.PendingCount)
	if runtime.ScalingKnown {
		fmt.Printf("   Scaling band: [%d, %d]\n", runtime.ScalingMin, runtime.ScalingMax)
	}
	if runtime.DeploymentNote != "" {
		fmt.Printf("   Rollout: %s\n", runtime.DeploymentNote)
	}

	if c.Bool("detailed") {
		if len(runtime.Tasks) > 0 {
			fmt.Println("\n🧾 Tasks:")
			for _, task := range runtime.Tasks {
				line := fmt.Sprintf("   • %s  %s", task.TaskARN, task.Lifecycle)
				if task.Health != "" && task.Health != "UNKNOWN" {
					line += fmt.Sprintf("  health=%s", task.Health)
				}
				if task.StoppedBy != "" {
					line += fmt.Sprintf("  stopped: %s", task.StoppedBy)
				}
				fmt.Println(line)
			}
		}
		if len(runtime.Targets) > 0 {
			fmt.Println("\n🎯 Load balancer targets:")
			for _, target := range runtime.Targets {
				line := fmt.Sprintf("   • %s  %s", target.TargetID, target.State)
				if target.Description != "" {
					line += fmt.Sprintf("  (%s)", target.Description)
				}
				fmt.Println(line)
			}
		}
	}
	return nil
}

// secretsCheckCommand verifies every declared secret parameter exists
func secretsCheckCommand(c *cli.Context) error {
	ctx := context.Background()
	manager, err := bindProject(ctx, c)
	if err != nil {
		return err
	}

	top, err := manager.Provider.GetTopology(ctx)
	if err != nil {
		return err
	}

	names := top.SecretParameterNames()
	missing, err := manager.Provider.VerifySecretParameters(ctx, names)
	if err != nil {
		return err
	}

	if len(missing) == 0 {
		fmt.Printf("✅ All %d secret parameters exist\n", len(names))
		return nil
	}
	fmt.Printf("❌ %d of %d secret parameters are missing:\n", len(missing), len(names))
	for _, name := range missing {
		fmt.Printf("   • %s\n", name)
	}
	return fmt.Errorf("create them with 'agentctl secrets put'")
}

// secretsListCommand lists parameter names, never values
func secretsListCommand(c *cli.Context) error {
	ctx := context.Background()
	manager, err := bindProject(ctx, c)
	if err != nil {
		return err
	}
	provider, err := awsProvider(manager)
	if err != nil {
		return err
	}

	prefix := fmt.Sprintf("/agentic-api/%s/", c.String("project"))
	names, err := provider.ListSecretParameters(ctx, prefix)
	if err != nil {
		return err
	}

	if len(names) == 0 {
		fmt.Printf("No parameters found under %s\n", prefix)
		return nil
	}
	fmt.Printf("🔐 Parameters under %s:\n", prefix)
	for _, name := range names {
		fmt.Printf("   • %s\n", name)
	}
	return nil
}

// secretsPutCommand stores one secret value, prompted without echo
func secretsPutCommand(c *cli.Context) error {
	ctx := context.Background()
	manager, err := bindProject(ctx, c)
	if err != nil {
		return err
	}
	provider, err := awsProvider(manager)
	if err != nil {
		return err
	}

	top, err := manager.Provider.GetTopology(ctx)
	if err != nil {
		return err
	}

	envName := c.String("name")
	var parameter string
	for _, ref := range top.Compute.Secrets {
		if ref.Env == envName {
			parameter = ref.Parameter
			break
		}
	}
	if parameter == "" {
		return fmt.Errorf("'%s' is not a declared secret; see 'agentctl secrets check'", envName)
	}

	value, err := prompts.PromptSecretValue(parameter)
	if err != nil {
		return err
	}
	if err := provider.PutSecretParameter(ctx, parameter, value); err != nil {
		return err
	}

	fmt.Printf("✅ Stored %s\n", parameter)
	return nil
}

// logsCommand tails recent application logs from CloudWatch
func logsCommand(c *cli.Context) error {
	ctx := context.Background()
	manager, err := bindProject(ctx, c)
	if err != nil {
		return err
	}
	provider, err := awsProvider(manager)
	if err != nil {
		return err
	}

	md, err := manager.Provider.GetDeploymentMetadata(ctx)
	if err != nil {
		return err
	}
	logGroup := md.Infrastructure.LogGroup
	if logGroup == "" {
		top, err := manager.Provider.GetTopology(ctx)
		if err != nil {
			return err
		}
		logGroup = top.Observability.LogGroup
	}

	events, err := provider.TailLogs(ctx, logGroup, c.Duration("since"), int32(c.Int("limit")))
	if err != nil {
		return err
	}

	if len(events) == 0 {
		fmt.Printf("No log events in %s for the last %s\n", logGroup, c.Duration("since"))
		return nil
	}
	for _, event := range events {
		fmt.Printf("%s [%s] %s\n",
			event.Timestamp.Local().Format("15:04:05"),
			event.Stream,
			strings.TrimRight(event.Message, "\n"))
	}
	return nil
}

// destroyCommand tears down the deployed infrastructure
func destroyCommand(c *cli.Context) error {
	ctx := context.Background()
	projectName := c.String("project")

	if !c.Bool("force") {
		confirmed, err := prompts.ConfirmDestroy(projectName)
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("\nTeardown cancelled")
			return nil
		}
	}

	manager, err := bindProject(ctx, c)
	if err != nil {
		return err
	}

	deployed, err := manager.Provider.IsDeployed(ctx)
	if err != nil {
		return err
	}
	if deployed {
		top, err := manager.Provider.GetTopology(ctx)
		if err != nil {
			return err
		}
		tfm := terraform.NewManager(top, manager.Provider.GetStorageName(), manager.Provider.GetLockTableName(), c.String("profile"))
		if err := tfm.Destroy(ctx); err != nil {
			terraform.DisplayTerraformError("destroy", err)
			return err
		}
		if err := manager.Provider.DeleteDeploymentMetadata(ctx); err != nil {
			fmt.Printf("⚠️  Infrastructure destroyed, but metadata cleanup failed: %v\n", err)
		}
		fmt.Println("✅ Infrastructure destroyed")
	} else {
		fmt.Println("ℹ️  No deployed infrastructure found.")
	}

	if c.Bool("purge") {
		fmt.Printf("🗑️  Deleting project storage for: %s\n", projectName)
		return manager.Provider.DeleteProject(ctx, projectName)
	}
	return nil
}

// showDetailedHelp displays comprehensive CLI help documentation
func showDetailedHelp(c *cli.Context) error {
	const (
		cyan   = "\033[36m"
		yellow = "\033[33m"
		reset  = "\033[0m"
	)
	v := c.App.Version
	if v == "" {
		v = "beta"
	}

	help := fmt.Sprintf(`
%sagentctl%s v%s — agentic API deployment CLI

%sUSAGE%s
	agentctl [global flags] <command> [flags]
	Example: agentctl --profile dev deploy --project orders

%sWORKFLOW%s
	init      Create state bucket, lock table, and default declaration
	validate  Statically check the declaration and Dockerfile
	secrets   put/check/list the service's secret parameters
	build     Build the container image and push it to ECR
	plan      Preview infrastructure changes
	deploy    Apply the declaration (plan, policy gate, confirm, apply)
	status    Deployment + runtime view (add --detailed)
	projects  List every project with state storage
	history   List a project's declaration versions
	scale     Set the task count or band (--count, --min, --max)
	logs      Tail recent application logs
	destroy   Tear down infrastructure (add --purge for storage too)

%sGLOBAL FLAGS%s
	--profile <name>   AWS credential profile (or AWS_PROFILE env)

%sENV VARS%s
	AWS_PROFILE           Alternative to --profile
	DOCKER_HOST           Docker daemon used by 'agentctl build'

%sQUICK EXAMPLES%s
	agentctl init --project orders
	agentctl secrets put --project orders --name OPENAI_API_KEY
	agentctl secrets check --project orders
	agentctl build --project orders --context ./service --push
	agentctl deploy --project orders
	agentctl status --project orders --detailed
	agentctl scale --project orders --count 3
	agentctl logs --project orders --since 1h
	agentctl destroy --project orders --force

Run 'agentctl <command> --help' for command-specific flags.
`,
		cyan, reset, v,
		yellow, reset,
		yellow, reset,
		yellow, reset,
		yellow, reset,
		yellow, reset,
	)
	fmt.Print(help)
	return nil
}
