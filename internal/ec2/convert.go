package ec2

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/srbarik25/opsagent/internal/devops"
)

func toInstance(in types.Instance, region string) devops.Instance {
	inst := devops.Instance{
		ID:        aws.ToString(in.InstanceId),
		Type:      string(in.InstanceType),
		ImageID:   aws.ToString(in.ImageId),
		KeyName:   aws.ToString(in.KeyName),
		PublicIP:  aws.ToString(in.PublicIpAddress),
		PrivateIP: aws.ToString(in.PrivateIpAddress),
		Region:    region,
		VpcID:     aws.ToString(in.VpcId),
		SubnetID:  aws.ToString(in.SubnetId),
	}
	if in.State != nil {
		inst.State = string(in.State.Name)
	}
	if in.LaunchTime != nil {
		inst.LaunchedAt = *in.LaunchTime
	}
	for _, sg := range in.SecurityGroups {
		inst.SecurityGIDs = append(inst.SecurityGIDs, aws.ToString(sg.GroupId))
	}
	if len(in.Tags) > 0 {
		inst.Tags = make(map[string]string, len(in.Tags))
		for _, tag := range in.Tags {
			key := aws.ToString(tag.Key)
			inst.Tags[key] = aws.ToString(tag.Value)
			if key == "Name" {
				inst.Name = aws.ToString(tag.Value)
			}
		}
	}
	return inst
}

func toSecurityGroup(in types.SecurityGroup) devops.SecurityGroup {
	return devops.SecurityGroup{
		ID:          aws.ToString(in.GroupId),
		Name:        aws.ToString(in.GroupName),
		Description: aws.ToString(in.Description),
		VpcID:       aws.ToString(in.VpcId),
		Ingress:     toPermissions(in.IpPermissions),
		Egress:      toPermissions(in.IpPermissionsEgress),
	}
}

func toPermissions(in []types.IpPermission) []devops.IPPermission {
	var perms []devops.IPPermission
	for _, p := range in {
		perm := devops.IPPermission{
			Protocol: aws.ToString(p.IpProtocol),
			FromPort: aws.ToInt32(p.FromPort),
			ToPort:   aws.ToInt32(p.ToPort),
		}
		for _, r := range p.IpRanges {
			perm.CIDRs = append(perm.CIDRs, aws.ToString(r.CidrIp))
		}
		perms = append(perms, perm)
	}
	return perms
}

func toKeyPair(in types.KeyPairInfo) devops.KeyPair {
	return devops.KeyPair{
		Name:        aws.ToString(in.KeyName),
		ID:          aws.ToString(in.KeyPairId),
		Fingerprint: aws.ToString(in.KeyFingerprint),
	}
}

func toImage(in types.Image) devops.Image {
	return devops.Image{
		ID:           aws.ToString(in.ImageId),
		Name:         aws.ToString(in.Name),
		Description:  aws.ToString(in.Description),
		State:        string(in.State),
		Architecture: string(in.Architecture),
		CreatedAt:    aws.ToString(in.CreationDate),
	}
}
