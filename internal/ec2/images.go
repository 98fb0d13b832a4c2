package ec2

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsec2 "github.com/aws/aws-sdk-go-v2/service/ec2"

	"github.com/srbarik25/opsagent/internal/devops"
)

// ListImages returns AMIs owned by the given owners ("self" by default).
func (s *Service) ListImages(ctx context.Context, owners []string) ([]devops.Image, error) {
	if len(owners) == 0 {
		owners = []string{"self"}
	}

	var out *awsec2.DescribeImagesOutput
	err := s.do(ctx, "list_amis", func() error {
		var callErr error
		out, callErr = s.api.DescribeImages(ctx, &awsec2.DescribeImagesInput{
			Owners: owners,
		})
		return callErr
	})
	if err != nil {
		return nil, err
	}

	images := make([]devops.Image, 0, len(out.Images))
	for _, img := range out.Images {
		images = append(images, toImage(img))
	}
	return images, nil
}

// GetImage returns a single AMI by ID.
func (s *Service) GetImage(ctx context.Context, id string) (*devops.Image, error) {
	const op = "get_ami"
	var out *awsec2.DescribeImagesOutput
	err := s.do(ctx, op, func() error {
		var callErr error
		out, callErr = s.api.DescribeImages(ctx, &awsec2.DescribeImagesInput{
			ImageIds: []string{id},
		})
		return callErr
	})
	if err != nil {
		return nil, err
	}
	if len(out.Images) == 0 {
		return nil, notFound(op, "InvalidAMIID.NotFound",
			fmt.Sprintf("The image ID '%s' does not exist", id))
	}

	image := toImage(out.Images[0])
	return &image, nil
}

// CreateImage creates an AMI from an instance and returns the new image ID.
// NoReboot skips stopping the instance first, at the cost of filesystem
// consistency.
func (s *Service) CreateImage(ctx context.Context, instanceID, name, description string, noReboot bool) (string, error) {
	input := &awsec2.CreateImageInput{
		InstanceId: aws.String(instanceID),
		Name:       aws.String(name),
	}
	if description != "" {
		input.Description = aws.String(description)
	}
	if noReboot {
		input.NoReboot = aws.Bool(true)
	}

	var out *awsec2.CreateImageOutput
	err := s.do(ctx, "create_ami", func() error {
		var callErr error
		out, callErr = s.api.CreateImage(ctx, input)
		return callErr
	})
	if err != nil {
		return "", err
	}
	return aws.ToString(out.ImageId), nil
}

// DeregisterImage removes an AMI registration.
func (s *Service) DeregisterImage(ctx context.Context, id string) error {
	return s.do(ctx, "deregister_ami", func() error {
		_, err := s.api.DeregisterImage(ctx, &awsec2.DeregisterImageInput{
			ImageId: aws.String(id),
		})
		return err
	})
}
