package ec2

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsec2 "github.com/aws/aws-sdk-go-v2/service/ec2"

	"github.com/srbarik25/opsagent/internal/devops"
)

// ListKeyPairs returns all key pairs in the region.
func (s *Service) ListKeyPairs(ctx context.Context) ([]devops.KeyPair, error) {
	var out *awsec2.DescribeKeyPairsOutput
	err := s.do(ctx, "list_key_pairs", func() error {
		var callErr error
		out, callErr = s.api.DescribeKeyPairs(ctx, &awsec2.DescribeKeyPairsInput{})
		return callErr
	})
	if err != nil {
		return nil, err
	}

	pairs := make([]devops.KeyPair, 0, len(out.KeyPairs))
	for _, kp := range out.KeyPairs {
		pairs = append(pairs, toKeyPair(kp))
	}
	return pairs, nil
}

// GetKeyPair returns a single key pair by name.
func (s *Service) GetKeyPair(ctx context.Context, name string) (*devops.KeyPair, error) {
	const op = "get_key_pair"
	var out *awsec2.DescribeKeyPairsOutput
	err := s.do(ctx, op, func() error {
		var callErr error
		out, callErr = s.api.DescribeKeyPairs(ctx, &awsec2.DescribeKeyPairsInput{
			KeyNames: []string{name},
		})
		return callErr
	})
	if err != nil {
		return nil, err
	}
	if len(out.KeyPairs) == 0 {
		return nil, notFound(op, "InvalidKeyPair.NotFound",
			fmt.Sprintf("The key pair '%s' does not exist", name))
	}

	pair := toKeyPair(out.KeyPairs[0])
	return &pair, nil
}

// CreateKeyPair creates a new key pair. The returned Material holds the
// private key; AWS never returns it again after this call.
func (s *Service) CreateKeyPair(ctx context.Context, name string) (*devops.KeyPair, error) {
	var out *awsec2.CreateKeyPairOutput
	err := s.do(ctx, "create_key_pair", func() error {
		var callErr error
		out, callErr = s.api.CreateKeyPair(ctx, &awsec2.CreateKeyPairInput{
			KeyName: aws.String(name),
		})
		return callErr
	})
	if err != nil {
		return nil, err
	}

	return &devops.KeyPair{
		Name:        aws.ToString(out.KeyName),
		ID:          aws.ToString(out.KeyPairId),
		Fingerprint: aws.ToString(out.KeyFingerprint),
		Material:    aws.ToString(out.KeyMaterial),
	}, nil
}

// DeleteKeyPair removes a key pair by name.
func (s *Service) DeleteKeyPair(ctx context.Context, name string) error {
	return s.do(ctx, "delete_key_pair", func() error {
		_, err := s.api.DeleteKeyPair(ctx, &awsec2.DeleteKeyPairInput{
			KeyName: aws.String(name),
		})
		return err
	})
}
