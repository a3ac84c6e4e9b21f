package ioscfg

import "fmt"

// ManagementSSH builds the SSH management blocks added to every router,
// L3 core switch, and L2 switch: a domain name, an RSA keypair, a local
// user, then a `line vty 0 5` submode restricting access to SSH with
// local login.
func ManagementSSH(hostname string) []Block {
	global := Block{
		Kind: Global,
		Lines: []string{
			fmt.Sprintf("ip domain-name %s.local", hostname),
			"crypto key generate rsa modulus 512",
			"username admin privilege 15 secret cisco",
		},
	}
	vty := Block{
		Kind: LineVTY,
		Lines: []string{
			"line vty 0 5",
			"transport input ssh",
			"login local",
		},
	}
	return []Block{global, vty}
}
