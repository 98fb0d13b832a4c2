package ec2

import (
	"context"
	"errors"
	"strings"
	"testing"

	awsec2 "github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/smithy-go"

	"github.com/srbarik25/opsagent/internal/classify"
)

type lifecycleAPI struct {
	mockAPI

	stopErr  error
	stopped  []string
	started  []string
	rebooted []string
}

func (m *lifecycleAPI) StopInstances(ctx context.Context, params *awsec2.StopInstancesInput, optFns ...func(*awsec2.Options)) (*awsec2.StopInstancesOutput, error) {
	if m.stopErr != nil {
		return nil, m.stopErr
	}
	m.stopped = append(m.stopped, params.InstanceIds...)
	return &awsec2.StopInstancesOutput{}, nil
}

func (m *lifecycleAPI) StartInstances(ctx context.Context, params *awsec2.StartInstancesInput, optFns ...func(*awsec2.Options)) (*awsec2.StartInstancesOutput, error) {
	m.started = append(m.started, params.InstanceIds...)
	return &awsec2.StartInstancesOutput{}, nil
}

func (m *lifecycleAPI) RebootInstances(ctx context.Context, params *awsec2.RebootInstancesInput, optFns ...func(*awsec2.Options)) (*awsec2.RebootInstancesOutput, error) {
	m.rebooted = append(m.rebooted, params.InstanceIds...)
	return &awsec2.RebootInstancesOutput{}, nil
}

func useLifecycleAPI(t *testing.T) *lifecycleAPI {
	t.Helper()
	api := &lifecycleAPI{}
	useMockService(t, api)
	return api
}

func TestStopCommand(t *testing.T) {
	api := useLifecycleAPI(t)

	stdout, stderr, err := execEC2(t, "stop", "i-0web", "--region", "us-east-1")
	if err != nil {
		t.Fatalf("stop error: %v", err)
	}
	if len(api.stopped) != 1 || api.stopped[0] != "i-0web" {
		t.Errorf("stopped = %v, want [i-0web]", api.stopped)
	}
	if !strings.Contains(stderr, "Stopping instance i-0web") {
		t.Errorf("stderr = %q", stderr)
	}
	if !strings.Contains(stdout, "state change requested") {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestStopCommand_PermissionDeniedPropagates(t *testing.T) {
	api := useLifecycleAPI(t)
	api.stopErr = &smithy.GenericAPIError{
		Code:    "UnauthorizedOperation",
		Message: "You are not authorized to perform this operation",
	}

	_, _, err := execEC2(t, "stop", "i-0web", "--region", "us-east-1")

	var classified *classify.Error
	if !errors.As(err, &classified) {
		t.Fatalf("error is %T, want *classify.Error", err)
	}
	if classified.Kind != classify.KindPermissionDenied {
		t.Errorf("Kind = %v, want PermissionDenied", classified.Kind)
	}
}

func TestStartCommand(t *testing.T) {
	api := useLifecycleAPI(t)

	_, _, err := execEC2(t, "start", "i-0db", "--region", "us-east-1")
	if err != nil {
		t.Fatalf("start error: %v", err)
	}
	if len(api.started) != 1 || api.started[0] != "i-0db" {
		t.Errorf("started = %v, want [i-0db]", api.started)
	}
}

func TestRebootCommand(t *testing.T) {
	api := useLifecycleAPI(t)

	stdout, _, err := execEC2(t, "reboot", "i-0web", "--region", "us-east-1")
	if err != nil {
		t.Fatalf("reboot error: %v", err)
	}
	if len(api.rebooted) != 1 {
		t.Errorf("rebooted = %v", api.rebooted)
	}
	if !strings.Contains(stdout, "rebooting") {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestTerminateCommand_SkipsPromptWithYes(t *testing.T) {
	api := &terminateAPI{}
	useMockService(t, api)

	stdout, _, err := execEC2(t, "terminate", "i-0old", "--region", "us-east-1", "--yes")
	if err != nil {
		t.Fatalf("terminate error: %v", err)
	}
	if len(api.terminated) != 1 || api.terminated[0] != "i-0old" {
		t.Errorf("terminated = %v, want [i-0old]", api.terminated)
	}
	if !strings.Contains(stdout, "terminating") {
		t.Errorf("stdout = %q", stdout)
	}
}

type terminateAPI struct {
	mockAPI

	terminated []string
}

func (m *terminateAPI) TerminateInstances(ctx context.Context, params *awsec2.TerminateInstancesInput, optFns ...func(*awsec2.Options)) (*awsec2.TerminateInstancesOutput, error) {
	m.terminated = append(m.terminated, params.InstanceIds...)
	return &awsec2.TerminateInstancesOutput{}, nil
}
