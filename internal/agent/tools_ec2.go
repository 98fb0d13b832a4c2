package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	"github.com/srbarik25/opsagent/internal/ec2"
)

// EC2Tools builds the tool set exposing EC2 operations to the model.
func EC2Tools(svc *ec2.Service) []*Tool {
	return []*Tool{
		{
			Name:        "list_ec2_instances",
			Description: "List EC2 instances in the current region, optionally filtered by state (pending, running, stopping, stopped, terminated).",
			Parameters: objectSchema(map[string]*genai.Schema{
				"state": {Type: genai.TypeString, Description: "Optional instance state filter."},
			}),
			Run: func(ctx context.Context, args map[string]any) (map[string]any, error) {
				instances, err := svc.ListInstances(ctx, stringArg(args, "state"))
				if err != nil {
					return nil, err
				}
				return listResult("instances", instances)
			},
		},
		{
			Name:        "get_ec2_instance",
			Description: "Get details of a single EC2 instance by ID.",
			Parameters: objectSchema(map[string]*genai.Schema{
				"instance_id": {Type: genai.TypeString, Description: "The instance ID, e.g. i-0abc123."},
			}, "instance_id"),
			Run: func(ctx context.Context, args map[string]any) (map[string]any, error) {
				inst, err := svc.GetInstance(ctx, stringArg(args, "instance_id"))
				if err != nil {
					return nil, err
				}
				return asMap(inst)
			},
		},
		{
			Name:        "start_ec2_instance",
			Description: "Start a stopped EC2 instance.",
			Parameters: objectSchema(map[string]*genai.Schema{
				"instance_id": {Type: genai.TypeString},
			}, "instance_id"),
			Run: func(ctx context.Context, args map[string]any) (map[string]any, error) {
				id := stringArg(args, "instance_id")
				if err := svc.StartInstance(ctx, id); err != nil {
					return nil, err
				}
				return map[string]any{"instance_id": id, "status": "starting"}, nil
			},
		},
		{
			Name:        "stop_ec2_instance",
			Description: "Stop a running EC2 instance. Set force to stop without a clean OS shutdown.",
			Parameters: objectSchema(map[string]*genai.Schema{
				"instance_id": {Type: genai.TypeString},
				"force":       {Type: genai.TypeBoolean},
			}, "instance_id"),
			Run: func(ctx context.Context, args map[string]any) (map[string]any, error) {
				id := stringArg(args, "instance_id")
				if err := svc.StopInstance(ctx, id, boolArg(args, "force")); err != nil {
					return nil, err
				}
				return map[string]any{"instance_id": id, "status": "stopping"}, nil
			},
		},
		{
			Name:        "reboot_ec2_instance",
			Description: "Reboot an EC2 instance.",
			Parameters: objectSchema(map[string]*genai.Schema{
				"instance_id": {Type: genai.TypeString},
			}, "instance_id"),
			Run: func(ctx context.Context, args map[string]any) (map[string]any, error) {
				id := stringArg(args, "instance_id")
				if err := svc.RebootInstance(ctx, id); err != nil {
					return nil, err
				}
				return map[string]any{"instance_id": id, "status": "rebooting"}, nil
			},
		},
		{
			Name:        "terminate_ec2_instance",
			Description: "Permanently terminate an EC2 instance. This cannot be undone.",
			Parameters: objectSchema(map[string]*genai.Schema{
				"instance_id": {Type: genai.TypeString},
			}, "instance_id"),
			Run: func(ctx context.Context, args map[string]any) (map[string]any, error) {
				id := stringArg(args, "instance_id")
				if err := svc.TerminateInstance(ctx, id); err != nil {
					return nil, err
				}
				return map[string]any{"instance_id": id, "status": "terminating"}, nil
			},
		},
		{
			Name:        "create_ec2_instance",
			Description: "Launch a new EC2 instance from an AMI.",
			Parameters: objectSchema(map[string]*genai.Schema{
				"image_id":      {Type: genai.TypeString, Description: "AMI ID to launch from."},
				"instance_type": {Type: genai.TypeString, Description: "Instance type, e.g. t3.micro."},
				"key_name":      {Type: genai.TypeString, Description: "Optional key pair name for SSH access."},
				"name":          {Type: genai.TypeString, Description: "Optional Name tag."},
			}, "image_id", "instance_type"),
			Run: func(ctx context.Context, args map[string]any) (map[string]any, error) {
				inst, err := svc.CreateInstance(ctx, ec2.CreateInstanceOpts{
					ImageID: stringArg(args, "image_id"),
					Type:    stringArg(args, "instance_type"),
					KeyName: stringArg(args, "key_name"),
					Name:    stringArg(args, "name"),
				})
				if err != nil {
					return nil, err
				}
				return asMap(inst)
			},
		},
		{
			Name:        "list_security_groups",
			Description: "List EC2 security groups, optionally restricted to a VPC.",
			Parameters: objectSchema(map[string]*genai.Schema{
				"vpc_id": {Type: genai.TypeString},
			}),
			Run: func(ctx context.Context, args map[string]any) (map[string]any, error) {
				groups, err := svc.ListSecurityGroups(ctx, stringArg(args, "vpc_id"))
				if err != nil {
					return nil, err
				}
				return listResult("security_groups", groups)
			},
		},
		{
			Name:        "list_key_pairs",
			Description: "List EC2 key pairs in the current region.",
			Parameters:  objectSchema(nil),
			Run: func(ctx context.Context, args map[string]any) (map[string]any, error) {
				pairs, err := svc.ListKeyPairs(ctx)
				if err != nil {
					return nil, err
				}
				return listResult("key_pairs", pairs)
			},
		},
		{
			Name:        "list_amis",
			Description: "List AMIs owned by the account.",
			Parameters:  objectSchema(nil),
			Run: func(ctx context.Context, args map[string]any) (map[string]any, error) {
				images, err := svc.ListImages(ctx, nil)
				if err != nil {
					return nil, err
				}
				return listResult("images", images)
			},
		},
		{
			Name:        "list_aws_regions",
			Description: "List AWS regions enabled for the account.",
			Parameters:  objectSchema(nil),
			Run: func(ctx context.Context, args map[string]any) (map[string]any, error) {
				regions, err := svc.ListRegions(ctx)
				if err != nil {
					return nil, err
				}
				return listResult("regions", regions)
			},
		},
	}
}

func objectSchema(props map[string]*genai.Schema, required ...string) *genai.Schema {
	if props == nil {
		props = map[string]*genai.Schema{}
	}
	return &genai.Schema{
		Type:       genai.TypeObject,
		Properties: props,
		Required:   required,
	}
}

func stringArg(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}

func boolArg(args map[string]any, key string) bool {
	b, _ := args[key].(bool)
	return b
}

func intArg(args map[string]any, key string) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}

// asMap serializes a domain value into the generic map shape function
// responses require.
func asMap(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode tool result: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("encode tool result: %w", err)
	}
	return m, nil
}

// listResult wraps a slice result under a named key with a count.
func listResult(key string, v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode tool result: %w", err)
	}
	var items []any
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("encode tool result: %w", err)
	}
	return map[string]any{key: items, "count": len(items)}, nil
}
