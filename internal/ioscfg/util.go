package ioscfg

import (
	"fmt"
	"net"
)

func maskString(n *net.IPNet) string {
	return net.IP(n.Mask).String()
}

func routeLine(dest *net.IPNet, nextHop net.IP) string {
	return fmt.Sprintf("ip route %s %s %s", dest.IP.String(), maskString(dest), nextHop.String())
}

func ipAddressLine(ip net.IP, n *net.IPNet) string {
	return fmt.Sprintf("ip address %s %s", ip.String(), maskString(n))
}
