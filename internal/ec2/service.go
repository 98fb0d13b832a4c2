// Package ec2 wraps the AWS EC2 API behind provider-neutral domain types.
//
// Every call goes through a single do() helper that retries transient
// failures and converts SDK errors into classified errors, so callers only
// ever see classify.Error values and never raw SDK exceptions.
package ec2

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsec2 "github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/smithy-go"

	"github.com/srbarik25/opsagent/internal/classify"
	"github.com/srbarik25/opsagent/internal/retry"
)

// API is the subset of the EC2 client the service uses. Declared as an
// interface so tests can substitute a hand-written mock.
type API interface {
	DescribeInstances(ctx context.Context, params *awsec2.DescribeInstancesInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeInstancesOutput, error)
	RunInstances(ctx context.Context, params *awsec2.RunInstancesInput, optFns ...func(*awsec2.Options)) (*awsec2.RunInstancesOutput, error)
	StartInstances(ctx context.Context, params *awsec2.StartInstancesInput, optFns ...func(*awsec2.Options)) (*awsec2.StartInstancesOutput, error)
	StopInstances(ctx context.Context, params *awsec2.StopInstancesInput, optFns ...func(*awsec2.Options)) (*awsec2.StopInstancesOutput, error)
	TerminateInstances(ctx context.Context, params *awsec2.TerminateInstancesInput, optFns ...func(*awsec2.Options)) (*awsec2.TerminateInstancesOutput, error)
	RebootInstances(ctx context.Context, params *awsec2.RebootInstancesInput, optFns ...func(*awsec2.Options)) (*awsec2.RebootInstancesOutput, error)
	DescribeSecurityGroups(ctx context.Context, params *awsec2.DescribeSecurityGroupsInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeSecurityGroupsOutput, error)
	CreateSecurityGroup(ctx context.Context, params *awsec2.CreateSecurityGroupInput, optFns ...func(*awsec2.Options)) (*awsec2.CreateSecurityGroupOutput, error)
	AuthorizeSecurityGroupIngress(ctx context.Context, params *awsec2.AuthorizeSecurityGroupIngressInput, optFns ...func(*awsec2.Options)) (*awsec2.AuthorizeSecurityGroupIngressOutput, error)
	DeleteSecurityGroup(ctx context.Context, params *awsec2.DeleteSecurityGroupInput, optFns ...func(*awsec2.Options)) (*awsec2.DeleteSecurityGroupOutput, error)
	DescribeKeyPairs(ctx context.Context, params *awsec2.DescribeKeyPairsInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeKeyPairsOutput, error)
	CreateKeyPair(ctx context.Context, params *awsec2.CreateKeyPairInput, optFns ...func(*awsec2.Options)) (*awsec2.CreateKeyPairOutput, error)
	DeleteKeyPair(ctx context.Context, params *awsec2.DeleteKeyPairInput, optFns ...func(*awsec2.Options)) (*awsec2.DeleteKeyPairOutput, error)
	DescribeImages(ctx context.Context, params *awsec2.DescribeImagesInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeImagesOutput, error)
	CreateImage(ctx context.Context, params *awsec2.CreateImageInput, optFns ...func(*awsec2.Options)) (*awsec2.CreateImageOutput, error)
	DeregisterImage(ctx context.Context, params *awsec2.DeregisterImageInput, optFns ...func(*awsec2.Options)) (*awsec2.DeregisterImageOutput, error)
	DescribeRegions(ctx context.Context, params *awsec2.DescribeRegionsInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeRegionsOutput, error)
}

// Service provides EC2 operations for a single region.
type Service struct {
	api    API
	region string
	retry  retry.Config
}

// NewService creates a Service from a resolved AWS config.
func NewService(cfg aws.Config) *Service {
	return &Service{
		api:    awsec2.NewFromConfig(cfg),
		region: cfg.Region,
		retry:  retry.DefaultConfig(),
	}
}

// NewServiceWithAPI creates a Service around an existing API implementation.
// Intended for testing.
func NewServiceWithAPI(api API, region string) *Service {
	return &Service{api: api, region: region, retry: retry.Config{MaxAttempts: 1}}
}

// Region returns the region this service operates in.
func (s *Service) Region() string {
	return s.region
}

// do runs fn with retries and classifies any final error under op. All
// service methods route their API calls through here so every failure is
// uniformly classified.
func (s *Service) do(ctx context.Context, op string, fn func() error) error {
	if err := retry.Do(ctx, s.retry, awsRetryable, fn); err != nil {
		return wrap(op, err)
	}
	return nil
}

// wrap converts an SDK error into a classified error. Structured API errors
// are reduced to their code and message first so the classifier stays
// SDK-free.
func wrap(op string, err error) error {
	var ae smithy.APIError
	if errors.As(err, &ae) {
		return classify.Classify("aws", op, &classify.RawError{
			Code:    ae.ErrorCode(),
			Message: ae.ErrorMessage(),
		})
	}
	return classify.Classify("aws", op, err)
}

func awsRetryable(err error) bool {
	var ae smithy.APIError
	if errors.As(err, &ae) {
		switch ae.ErrorCode() {
		case "Throttling", "ThrottlingException", "RequestLimitExceeded":
			return true
		}
		return false
	}
	return retry.IsRetryable(err)
}

// notFound builds a classified not-found error for operations where the API
// reports success but returns no matching resource.
func notFound(op, code, message string) error {
	return classify.Classify("aws", op, &classify.RawError{Code: code, Message: message})
}
