// internal/terraform/display.go
package terraform

import (
	"fmt"
	"strings"
)

// DisplayPlanSummary prints the typed change set of a plan.
func DisplayPlanSummary(projectName string, summary *PlanSummary) {
	fmt.Println("\n" + strings.Repeat("=", 70))
	fmt.Printf("📋 PLANNED CHANGES: %s\n", projectName)
	fmt.Println(strings.Repeat("=", 70))

	if summary.NoChanges() {
		fmt.Println("✅ No changes. Infrastructure matches the declaration.")
		fmt.Println(strings.Repeat("=", 70) + "\n")
		return
	}

	for _, change := range summary.Changes {
		marker := "~"
		switch change.Action {
		case "create":
			marker = "+"
		case "delete":
			marker = "-"
		case "replace":
			marker = "±"
		}
		fmt.Printf("   %s %s (%s)\n", marker, change.Address, change.Action)
	}

	fmt.Printf("\nPlan: %d to add, %d to change, %d to destroy\n",
		summary.Add, summary.Change, summary.Destroy)
	if summary.Destructive() {
		fmt.Println("⚠️  This plan destroys or replaces resources")
	}
	fmt.Println(strings.Repeat("=", 70) + "\n")
}

// DisplayInfrastructureInfo shows the deployed stack's entry points.
func DisplayInfrastructureInfo(projectName string, outputs *Outputs) {
	fmt.Println("\n" + strings.Repeat("=", 70))
	fmt.Printf("📊 INFRASTRUCTURE STATUS: %s\n", projectName)
	fmt.Println(strings.Repeat("=", 70))

	if outputs.ServiceURL != "" {
		fmt.Printf("🔗 Service URL: %s\n", outputs.ServiceURL)
	}
	if outputs.ALBDNSName != "" {
		fmt.Printf("🌐 Load Balancer: %s\n", outputs.ALBDNSName)
	}
	if outputs.ClusterName != "" {
		fmt.Printf("🖥️  ECS Cluster: %s\n", outputs.ClusterName)
	}
	if outputs.ServiceName != "" {
		fmt.Printf("⚙️  ECS Service: %s\n", outputs.ServiceName)
	}
	if outputs.TaskDefinitionARN != "" {
		fmt.Printf("📦 Task Definition: %s\n", outputs.TaskDefinitionARN)
	}
	if outputs.LogGroup != "" {
		fmt.Printf("📜 Log Group: %s\n", outputs.LogGroup)
	}
	if outputs.VPCID != "" {
		fmt.Printf("🕸️  VPC: %s\n", outputs.VPCID)
	}

	fmt.Println(strings.Repeat("=", 70) + "\n")
}

// DisplayTerraformError shows formatted Terraform errors
func DisplayTerraformError(operation string, err error) {
	fmt.Println("\n" + strings.Repeat("❌", 20))
	fmt.Printf("TERRAFORM %s FAILED\n", strings.ToUpper(operation))
	fmt.Println(strings.Repeat("❌", 20))

	fmt.Printf("Error: %v\n", err)

	fmt.Println("\n💡 Troubleshooting:")
	fmt.Println("1. Check your AWS credentials are configured")
	fmt.Println("2. Ensure Terraform is installed and in PATH")
	fmt.Println("3. Verify you have necessary AWS permissions")
	fmt.Println("4. Check for resource naming conflicts")

	fmt.Println(strings.Repeat("=", 50) + "\n")
}

// DisplayTerraformSuccess shows successful Terraform operations
func DisplayTerraformSuccess(operation string, projectName string) {
	fmt.Println("\n" + strings.Repeat("✅", 20))
	fmt.Printf("TERRAFORM %s COMPLETED\n", strings.ToUpper(operation))
	fmt.Println(strings.Repeat("✅", 20))

	fmt.Printf("Project: %s\n", projectName)
	fmt.Printf("Operation: %s\n", operation)

	if operation == "destroy" {
		fmt.Println("🧹 All infrastructure has been removed")
		fmt.Println("💰 No further AWS charges will be incurred")
	}

	fmt.Println(strings.Repeat("=", 50) + "\n")
}
