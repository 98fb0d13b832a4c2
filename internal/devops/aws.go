package devops

import "time"

// Instance represents an EC2 instance in provider-neutral form.
type Instance struct {
	ID           string            `json:"id"`
	Name         string            `json:"name,omitempty"`
	State        string            `json:"state"`
	Type         string            `json:"type"`
	ImageID      string            `json:"image_id,omitempty"`
	KeyName      string            `json:"key_name,omitempty"`
	PublicIP     string            `json:"public_ip,omitempty"`
	PrivateIP    string            `json:"private_ip,omitempty"`
	Region       string            `json:"region"`
	VpcID        string            `json:"vpc_id,omitempty"`
	SubnetID     string            `json:"subnet_id,omitempty"`
	LaunchedAt   time.Time         `json:"launched_at,omitempty"`
	Tags         map[string]string `json:"tags,omitempty"`
	SecurityGIDs []string          `json:"security_group_ids,omitempty"`
}

// Instance state constants mirror the values returned by the EC2 API.
const (
	InstanceStatePending    = "pending"
	InstanceStateRunning    = "running"
	InstanceStateStopping   = "stopping"
	InstanceStateStopped    = "stopped"
	InstanceStateTerminated = "terminated"
)

// SecurityGroup represents an EC2 security group.
type SecurityGroup struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	VpcID       string         `json:"vpc_id,omitempty"`
	Ingress     []IPPermission `json:"ingress,omitempty"`
	Egress      []IPPermission `json:"egress,omitempty"`
}

// IPPermission is a single ingress or egress rule on a security group.
type IPPermission struct {
	Protocol string   `json:"protocol"`
	FromPort int32    `json:"from_port"`
	ToPort   int32    `json:"to_port"`
	CIDRs    []string `json:"cidrs,omitempty"`
}

// KeyPair represents an EC2 key pair. Material is only populated when the
// key pair was just created; AWS never returns it again.
type KeyPair struct {
	Name        string `json:"name"`
	ID          string `json:"id,omitempty"`
	Fingerprint string `json:"fingerprint,omitempty"`
	Material    string `json:"material,omitempty"`
}

// Image represents an AMI.
type Image struct {
	ID           string `json:"id"`
	Name         string `json:"name,omitempty"`
	Description  string `json:"description,omitempty"`
	State        string `json:"state,omitempty"`
	Architecture string `json:"architecture,omitempty"`
	CreatedAt    string `json:"created_at,omitempty"`
}

// Region is an available AWS region.
type Region struct {
	Name     string `json:"name"`
	Endpoint string `json:"endpoint,omitempty"`
}
