package prompts

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/AlecAivazis/survey/v2"

	"github.com/hiptraveler/agentctl/internal/models"
)

// PromptCertificateARN captures the ACM certificate for the HTTPS
// listener. The listener cannot be created without one.
func PromptCertificateARN(top *models.Topology) error {
	if top.Edge.CertificateARN != "" {
		return nil
	}

	var arn string
	_ = survey.AskOne(&survey.Input{
		Message: "ACM certificate ARN for the HTTPS listener:",
		Help:    "e.g., arn:aws:acm:us-east-1:123456789012:certificate/abcd-1234",
	}, &arn)
	arn = strings.TrimSpace(arn)
	if arn == "" {
		return fmt.Errorf("a certificate ARN is required; the service only serves HTTPS")
	}
	top.Edge.CertificateARN = arn
	return nil
}

// PromptBYOIAM asks whether to reuse existing ECS roles instead of
// letting the stack create them.
func PromptBYOIAM(top *models.Topology) error {
	var useIAM bool
	_ = survey.AskOne(&survey.Confirm{
		Message: "Use existing IAM roles for ECS (execution & task)?",
		Default: false,
	}, &useIAM)

	if !useIAM {
		return nil
	}

	var execArn, taskArn string
	_ = survey.AskOne(&survey.Input{
		Message: "Execution role ARN:",
	}, &execArn)
	_ = survey.AskOne(&survey.Input{
		Message: "Task role ARN (press Enter to reuse execution role):",
	}, &taskArn)

	execArn = strings.TrimSpace(execArn)
	taskArn = strings.TrimSpace(taskArn)

	if execArn == "" {
		return fmt.Errorf("execution role ARN is required when using existing IAM roles")
	}
	if taskArn == "" {
		taskArn = execArn
	}

	top.Identity.ExecutionRoleARN = execArn
	top.Identity.TaskRoleARN = taskArn
	return nil
}

// PromptExtraEnvironment collects plain (non-secret) environment
// variables via a .env file and/or manual KEY=VALUE entries. Secret
// values never go here; they belong in the parameter store.
func PromptExtraEnvironment(top *models.Topology) error {
	if top.Compute.Environment == nil {
		top.Compute.Environment = map[string]string{}
	}

	var useEnvFile bool
	_ = survey.AskOne(&survey.Confirm{Message: "Load plain environment variables from a .env file?", Default: false}, &useEnvFile)
	if useEnvFile {
		var path string
		_ = survey.AskOne(&survey.Input{Message: "Path to .env file:"}, &path)
		path = strings.TrimSpace(path)
		if path != "" {
			if err := loadEnvFileInto(path, top.Compute.Environment); err != nil {
				return fmt.Errorf("read .env: %w", err)
			}
		}
	}

	var addManual bool
	_ = survey.AskOne(&survey.Confirm{Message: "Add environment variables manually?", Default: false}, &addManual)
	if addManual {
		for {
			var kv string
			_ = survey.AskOne(&survey.Input{Message: "Enter KEY=VALUE (blank to finish):"}, &kv)
			kv = strings.TrimSpace(kv)
			if kv == "" {
				break
			}
			k, v, ok := splitOnce(kv)
			if !ok || k == "" {
				fmt.Println("Skipping invalid entry; expected KEY=VALUE")
				continue
			}
			top.Compute.Environment[k] = v
		}
	}
	return nil
}

// PromptSecretValue reads one secret value without echoing it. The value
// goes straight to the parameter store and is never written anywhere else.
func PromptSecretValue(parameterName string) (string, error) {
	var value string
	if err := survey.AskOne(&survey.Password{
		Message: fmt.Sprintf("Value for %s:", parameterName),
	}, &value); err != nil {
		return "", err
	}
	if strings.TrimSpace(value) == "" {
		return "", fmt.Errorf("empty value for %s", parameterName)
	}
	return value, nil
}

// PromptSetup runs the full interactive setup sequence for a new project.
func PromptSetup(top *models.Topology) error {
	if err := PromptCertificateARN(top); err != nil {
		return err
	}
	if err := PromptBYOIAM(top); err != nil {
		return err
	}
	return PromptExtraEnvironment(top)
}

// ConfirmDestroy requires the operator to retype the project name and
// confirm before any teardown proceeds.
func ConfirmDestroy(projectName string) (bool, error) {
	var inputName string
	if err := survey.AskOne(&survey.Input{
		Message: "Enter project name:",
	}, &inputName); err != nil {
		return false, err
	}
	if inputName != projectName {
		fmt.Println("\nProject name does not match. Teardown cancelled.")
		return false, nil
	}

	var confirmed bool
	if err := survey.AskOne(&survey.Confirm{
		Message: fmt.Sprintf("Are you sure? Project '%s' infrastructure will be destroyed. This action cannot be undone.", projectName),
	}, &confirmed); err != nil {
		return false, err
	}
	return confirmed, nil
}

func splitOnce(s string) (string, string, bool) {
	idx := strings.IndexByte(s, '=')
	if idx <= 0 {
		return "", "", false
	}
	k := strings.TrimSpace(s[:idx])
	v := strings.TrimSpace(s[idx+1:])
	// Unquote simple quotes if present
	if len(v) >= 2 {
		if (v[0] == '\'' && v[len(v)-1] == '\'') || (v[0] == '"' && v[len(v)-1] == '"') {
			v = v[1 : len(v)-1]
		}
	}
	return k, v, true
}

func loadEnvFileInto(path string, dst map[string]string) error {
	// Expand ~ and relative paths
	if strings.HasPrefix(path, "~") {
		home, _ := os.UserHomeDir()
		if home != "" {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		// allow leading "export "
		if strings.HasPrefix(line, "export ") {
			line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
		}
		k, v, ok := splitOnce(line)
		if ok && k != "" {
			dst[k] = v
		}
	}
	return sc.Err()
}
