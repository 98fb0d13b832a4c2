package ec2

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsec2 "github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/spf13/cobra"

	"github.com/srbarik25/opsagent/internal/config"
	ec2svc "github.com/srbarik25/opsagent/internal/ec2"
)

// configOverride points config loading at a temp path for the test.
func configOverride(t *testing.T, path string) {
	t.Helper()
	config.SetPath(path)
	t.Cleanup(config.ResetPath)
}

// mockAPI implements the used corner of ec2svc.API for CLI testing.
type mockAPI struct {
	ec2svc.API

	instances []types.Instance
	listErr   error
}

func (m *mockAPI) DescribeInstances(ctx context.Context, params *awsec2.DescribeInstancesInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeInstancesOutput, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return &awsec2.DescribeInstancesOutput{
		Reservations: []types.Reservation{{Instances: m.instances}},
	}, nil
}

// useMockService routes every service construction in this package at the
// given mock for the duration of the test.
func useMockService(t *testing.T, api ec2svc.API) {
	t.Helper()
	origNew, origFor := newService, serviceFor
	t.Cleanup(func() { newService, serviceFor = origNew, origFor })

	newService = func(*cobra.Command) (*ec2svc.Service, error) {
		return ec2svc.NewServiceWithAPI(api, "us-east-1"), nil
	}
	serviceFor = func(_ *cobra.Command, region string) (*ec2svc.Service, error) {
		return ec2svc.NewServiceWithAPI(api, region), nil
	}
}

// execEC2 runs the ec2 command group with root-level persistent flags wired
// up the way the real root command defines them.
func execEC2(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	cmd := NewCommand()
	cmd.PersistentFlags().String("region", "", "")
	cmd.PersistentFlags().String("profile", "", "")
	cmd.PersistentFlags().Bool("json", false, "")

	var outBuf, errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

func assertContainsAll(t *testing.T, output, label string, expected []string) {
	t.Helper()
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in %s output:\n%s", want, label, output)
		}
	}
}

func TestListCommand_DisplaysInstances(t *testing.T) {
	useMockService(t, &mockAPI{instances: []types.Instance{
		{
			InstanceId:      aws.String("i-0web"),
			InstanceType:    types.InstanceTypeT3Micro,
			State:           &types.InstanceState{Name: types.InstanceStateNameRunning},
			PublicIpAddress: aws.String("1.2.3.4"),
			Tags:            []types.Tag{{Key: aws.String("Name"), Value: aws.String("web-1")}},
		},
		{
			InstanceId:   aws.String("i-0db"),
			InstanceType: types.InstanceTypeT3Small,
			State:        &types.InstanceState{Name: types.InstanceStateNameStopped},
		},
	}})

	stdout, _, err := execEC2(t, "list", "--region", "us-east-1")
	if err != nil {
		t.Fatalf("list error: %v", err)
	}

	assertContainsAll(t, stdout, "stdout", []string{
		"ID", "NAME", "STATE", "PUBLIC IP",
		"i-0web", "web-1", "running", "1.2.3.4",
		"i-0db", "stopped",
	})
}

func TestListCommand_Empty(t *testing.T) {
	useMockService(t, &mockAPI{})

	stdout, _, err := execEC2(t, "list", "--region", "us-east-1")
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if !strings.Contains(stdout, "No instances found.") {
		t.Errorf("unexpected output:\n%s", stdout)
	}
}

func TestListCommand_JSON(t *testing.T) {
	useMockService(t, &mockAPI{instances: []types.Instance{{
		InstanceId:   aws.String("i-0web"),
		InstanceType: types.InstanceTypeT3Micro,
		State:        &types.InstanceState{Name: types.InstanceStateNameRunning},
	}}})

	stdout, _, err := execEC2(t, "list", "--region", "us-east-1", "--json")
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if !strings.Contains(stdout, `"id": "i-0web"`) {
		t.Errorf("expected JSON output:\n%s", stdout)
	}
}

func TestShowCommand_DisplaysDetail(t *testing.T) {
	useMockService(t, &mockAPI{instances: []types.Instance{{
		InstanceId:       aws.String("i-0web"),
		InstanceType:     types.InstanceTypeT3Micro,
		State:            &types.InstanceState{Name: types.InstanceStateNameRunning},
		PrivateIpAddress: aws.String("10.0.0.5"),
		VpcId:            aws.String("vpc-1"),
	}}})

	stdout, _, err := execEC2(t, "show", "i-0web", "--region", "us-east-1")
	if err != nil {
		t.Fatalf("show error: %v", err)
	}

	assertContainsAll(t, stdout, "stdout", []string{
		"ID:", "i-0web", "State:", "running", "Private IP:", "10.0.0.5", "VPC:", "vpc-1",
	})
}

func TestEC2Command_RequiresRegion(t *testing.T) {
	useMockService(t, &mockAPI{})

	dir := t.TempDir()
	configOverride(t, dir+"/config.json")

	_, _, err := execEC2(t, "list")
	if err == nil || !strings.Contains(err.Error(), "no region specified") {
		t.Errorf("err = %v, want missing-region error", err)
	}
}
