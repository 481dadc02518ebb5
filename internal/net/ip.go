package net

import (
	"log"
	"net"
)

// GetOutgoingIP finds the local address spectators on the LAN should use.
func GetOutgoingIP() string {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return localIPFallback()
	}
	defer conn.Close()

	return conn.LocalAddr().(*net.UDPAddr).IP.String()
}

// localIPFallback is used on networks without a default route.
func localIPFallback() string {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		log.Printf("[NET] Listing interface addresses: %v", err)
		return "127.0.0.1"
	}
	for _, address := range addrs {
		if ipnet, ok := address.(*net.IPNet); ok && !ipnet.IP.IsLoopback() && ipnet.IP.To4() != nil {
			return ipnet.IP.String()
		}
	}
	log.Println("[NET] No suitable local IP found, share link uses loopback")
	return "127.0.0.1"
}
