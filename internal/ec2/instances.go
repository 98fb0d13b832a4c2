package ec2

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsec2 "github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/srbarik25/opsagent/internal/devops"
)

// Polling knobs for WaitForState. Exported so tests and callers can speed
// polling up or bound it tighter.
var (
	PollInterval    = 5 * time.Second
	MaxPollAttempts = 60
)

// CreateInstanceOpts describes a new instance to launch.
type CreateInstanceOpts struct {
	ImageID          string
	Type             string
	KeyName          string
	SecurityGroupIDs []string
	SubnetID         string
	Name             string
	Tags             map[string]string
}

// ListInstances returns instances in the service region, optionally filtered
// by state (e.g. "running"). Results are fetched across all pages.
func (s *Service) ListInstances(ctx context.Context, state string) ([]devops.Instance, error) {
	input := &awsec2.DescribeInstancesInput{}
	if state != "" {
		input.Filters = []types.Filter{{
			Name:   aws.String("instance-state-name"),
			Values: []string{state},
		}}
	}

	var instances []devops.Instance
	for {
		var out *awsec2.DescribeInstancesOutput
		err := s.do(ctx, "list_instances", func() error {
			var callErr error
			out, callErr = s.api.DescribeInstances(ctx, input)
			return callErr
		})
		if err != nil {
			return nil, err
		}
		for _, res := range out.Reservations {
			for _, in := range res.Instances {
				instances = append(instances, toInstance(in, s.region))
			}
		}
		if out.NextToken == nil {
			break
		}
		input.NextToken = out.NextToken
	}
	return instances, nil
}

// GetInstance returns a single instance by ID.
func (s *Service) GetInstance(ctx context.Context, id string) (*devops.Instance, error) {
	const op = "get_instance"
	var out *awsec2.DescribeInstancesOutput
	err := s.do(ctx, op, func() error {
		var callErr error
		out, callErr = s.api.DescribeInstances(ctx, &awsec2.DescribeInstancesInput{
			InstanceIds: []string{id},
		})
		return callErr
	})
	if err != nil {
		return nil, err
	}

	for _, res := range out.Reservations {
		for _, in := range res.Instances {
			inst := toInstance(in, s.region)
			return &inst, nil
		}
	}
	return nil, notFound(op, "InvalidInstanceID.NotFound",
		fmt.Sprintf("The instance ID '%s' does not exist", id))
}

// CreateInstance launches a new instance and returns it in its initial
// (usually pending) state.
func (s *Service) CreateInstance(ctx context.Context, opts CreateInstanceOpts) (*devops.Instance, error) {
	input := &awsec2.RunInstancesInput{
		ImageId:      aws.String(opts.ImageID),
		InstanceType: types.InstanceType(opts.Type),
		MinCount:     aws.Int32(1),
		MaxCount:     aws.Int32(1),
	}
	if opts.KeyName != "" {
		input.KeyName = aws.String(opts.KeyName)
	}
	if len(opts.SecurityGroupIDs) > 0 {
		input.SecurityGroupIds = opts.SecurityGroupIDs
	}
	if opts.SubnetID != "" {
		input.SubnetId = aws.String(opts.SubnetID)
	}
	if tags := launchTags(opts); len(tags) > 0 {
		input.TagSpecifications = []types.TagSpecification{{
			ResourceType: types.ResourceTypeInstance,
			Tags:         tags,
		}}
	}

	var out *awsec2.RunInstancesOutput
	err := s.do(ctx, "create_instance", func() error {
		var callErr error
		out, callErr = s.api.RunInstances(ctx, input)
		return callErr
	})
	if err != nil {
		return nil, err
	}
	if len(out.Instances) == 0 {
		return nil, notFound("create_instance", "NotFound", "RunInstances returned no instances")
	}

	inst := toInstance(out.Instances[0], s.region)
	return &inst, nil
}

func launchTags(opts CreateInstanceOpts) []types.Tag {
	var tags []types.Tag
	if opts.Name != "" {
		tags = append(tags, types.Tag{Key: aws.String("Name"), Value: aws.String(opts.Name)})
	}
	for k, v := range opts.Tags {
		if k == "Name" && opts.Name != "" {
			continue
		}
		tags = append(tags, types.Tag{Key: aws.String(k), Value: aws.String(v)})
	}
	return tags
}

// StartInstance starts a stopped instance.
func (s *Service) StartInstance(ctx context.Context, id string) error {
	return s.do(ctx, "start_instance", func() error {
		_, err := s.api.StartInstances(ctx, &awsec2.StartInstancesInput{
			InstanceIds: []string{id},
		})
		return err
	})
}

// StopInstance stops a running instance. Force requests an immediate stop
// without waiting for a clean OS shutdown.
func (s *Service) StopInstance(ctx context.Context, id string, force bool) error {
	input := &awsec2.StopInstancesInput{InstanceIds: []string{id}}
	if force {
		input.Force = aws.Bool(true)
	}
	return s.do(ctx, "stop_instance", func() error {
		_, err := s.api.StopInstances(ctx, input)
		return err
	})
}

// TerminateInstance permanently terminates an instance.
func (s *Service) TerminateInstance(ctx context.Context, id string) error {
	return s.do(ctx, "terminate_instance", func() error {
		_, err := s.api.TerminateInstances(ctx, &awsec2.TerminateInstancesInput{
			InstanceIds: []string{id},
		})
		return err
	})
}

// RebootInstance requests a reboot. The API call is asynchronous and the
// instance state stays "running" throughout.
func (s *Service) RebootInstance(ctx context.Context, id string) error {
	return s.do(ctx, "reboot_instance", func() error {
		_, err := s.api.RebootInstances(ctx, &awsec2.RebootInstancesInput{
			InstanceIds: []string{id},
		})
		return err
	})
}

// WaitForState polls the instance until it reaches the target state, the
// context is canceled, or MaxPollAttempts is exhausted.
func (s *Service) WaitForState(ctx context.Context, id, target string) (*devops.Instance, error) {
	var last *devops.Instance
	for attempt := 0; attempt < MaxPollAttempts; attempt++ {
		inst, err := s.GetInstance(ctx, id)
		if err != nil {
			return nil, err
		}
		if inst.State == target {
			return inst, nil
		}
		last = inst

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(PollInterval):
		}
	}

	state := "unknown"
	if last != nil {
		state = last.State
	}
	return nil, fmt.Errorf("instance %s did not reach state %q (last seen %q)", id, target, state)
}
