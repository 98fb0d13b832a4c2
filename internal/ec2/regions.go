package ec2

import (
	"context"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsec2 "github.com/aws/aws-sdk-go-v2/service/ec2"
	"golang.org/x/sync/errgroup"

	"github.com/srbarik25/opsagent/internal/devops"
)

// ListRegions returns the regions enabled for the account.
func (s *Service) ListRegions(ctx context.Context) ([]devops.Region, error) {
	var out *awsec2.DescribeRegionsOutput
	err := s.do(ctx, "describe_regions", func() error {
		var callErr error
		out, callErr = s.api.DescribeRegions(ctx, &awsec2.DescribeRegionsInput{})
		return callErr
	})
	if err != nil {
		return nil, err
	}

	regions := make([]devops.Region, 0, len(out.Regions))
	for _, r := range out.Regions {
		regions = append(regions, devops.Region{
			Name:     aws.ToString(r.RegionName),
			Endpoint: aws.ToString(r.Endpoint),
		})
	}
	sort.Slice(regions, func(i, j int) bool { return regions[i].Name < regions[j].Name })
	return regions, nil
}

// ListInstancesAcrossRegions lists instances in every named region
// concurrently. The open callback builds a per-region service; the first
// region that fails cancels the rest.
func ListInstancesAcrossRegions(ctx context.Context, regions []string, state string, open func(region string) (*Service, error)) ([]devops.Instance, error) {
	g, ctx := errgroup.WithContext(ctx)
	perRegion := make([][]devops.Instance, len(regions))

	for i, region := range regions {
		g.Go(func() error {
			svc, err := open(region)
			if err != nil {
				return err
			}
			instances, err := svc.ListInstances(ctx, state)
			if err != nil {
				return err
			}
			perRegion[i] = instances
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []devops.Instance
	for _, instances := range perRegion {
		all = append(all, instances...)
	}
	return all, nil
}
