// Package discovery finds student API gateways on the local network over mDNS.
//
// Gateways advertise the "_studentapi._tcp" service type. TXT records carry
// optional metadata:
//   - path: API prefix (default "/")
//   - version: gateway version
//   - scheme: "http" or "https" (default "http")
//
// # Usage Example
//
//	gateways, err := discovery.DiscoverGateways(5 * time.Second)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, gw := range gateways {
//	    fmt.Println(gw.Instance, gw.BaseURL())
//	}
//
// # Network Requirements
//
// Multicast must be allowed on the interface and the firewall must let mDNS
// (UDP port 5353) through.
package discovery
