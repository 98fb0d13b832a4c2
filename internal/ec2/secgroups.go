package ec2

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsec2 "github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/srbarik25/opsagent/internal/devops"
)

// ListSecurityGroups returns all security groups in the region, optionally
// restricted to a VPC.
func (s *Service) ListSecurityGroups(ctx context.Context, vpcID string) ([]devops.SecurityGroup, error) {
	input := &awsec2.DescribeSecurityGroupsInput{}
	if vpcID != "" {
		input.Filters = []types.Filter{{
			Name:   aws.String("vpc-id"),
			Values: []string{vpcID},
		}}
	}

	var groups []devops.SecurityGroup
	for {
		var out *awsec2.DescribeSecurityGroupsOutput
		err := s.do(ctx, "list_security_groups", func() error {
			var callErr error
			out, callErr = s.api.DescribeSecurityGroups(ctx, input)
			return callErr
		})
		if err != nil {
			return nil, err
		}
		for _, g := range out.SecurityGroups {
			groups = append(groups, toSecurityGroup(g))
		}
		if out.NextToken == nil {
			break
		}
		input.NextToken = out.NextToken
	}
	return groups, nil
}

// GetSecurityGroup returns a single security group by ID.
func (s *Service) GetSecurityGroup(ctx context.Context, id string) (*devops.SecurityGroup, error) {
	const op = "get_security_group"
	var out *awsec2.DescribeSecurityGroupsOutput
	err := s.do(ctx, op, func() error {
		var callErr error
		out, callErr = s.api.DescribeSecurityGroups(ctx, &awsec2.DescribeSecurityGroupsInput{
			GroupIds: []string{id},
		})
		return callErr
	})
	if err != nil {
		return nil, err
	}
	if len(out.SecurityGroups) == 0 {
		return nil, notFound(op, "InvalidGroup.NotFound",
			fmt.Sprintf("The security group '%s' does not exist", id))
	}

	group := toSecurityGroup(out.SecurityGroups[0])
	return &group, nil
}

// CreateSecurityGroup creates a security group and returns it.
func (s *Service) CreateSecurityGroup(ctx context.Context, name, description, vpcID string) (*devops.SecurityGroup, error) {
	input := &awsec2.CreateSecurityGroupInput{
		GroupName:   aws.String(name),
		Description: aws.String(description),
	}
	if vpcID != "" {
		input.VpcId = aws.String(vpcID)
	}

	var out *awsec2.CreateSecurityGroupOutput
	err := s.do(ctx, "create_security_group", func() error {
		var callErr error
		out, callErr = s.api.CreateSecurityGroup(ctx, input)
		return callErr
	})
	if err != nil {
		return nil, err
	}

	return &devops.SecurityGroup{
		ID:          aws.ToString(out.GroupId),
		Name:        name,
		Description: description,
		VpcID:       vpcID,
	}, nil
}

// AuthorizeIngress adds an inbound rule to a security group.
func (s *Service) AuthorizeIngress(ctx context.Context, groupID string, rule devops.IPPermission) error {
	perm := types.IpPermission{
		IpProtocol: aws.String(rule.Protocol),
		FromPort:   aws.Int32(rule.FromPort),
		ToPort:     aws.Int32(rule.ToPort),
	}
	for _, cidr := range rule.CIDRs {
		perm.IpRanges = append(perm.IpRanges, types.IpRange{CidrIp: aws.String(cidr)})
	}

	return s.do(ctx, "authorize_security_group_ingress", func() error {
		_, err := s.api.AuthorizeSecurityGroupIngress(ctx, &awsec2.AuthorizeSecurityGroupIngressInput{
			GroupId:       aws.String(groupID),
			IpPermissions: []types.IpPermission{perm},
		})
		return err
	})
}

// DeleteSecurityGroup removes a security group by ID.
func (s *Service) DeleteSecurityGroup(ctx context.Context, id string) error {
	return s.do(ctx, "delete_security_group", func() error {
		_, err := s.api.DeleteSecurityGroup(ctx, &awsec2.DeleteSecurityGroupInput{
			GroupId: aws.String(id),
		})
		return err
	})
}
