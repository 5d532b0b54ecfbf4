// Package tlsutil loads TLS credentials for the gRPC server and client, and issues
// development certificates.
package tlsutil

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"fmt"
	"math/big"
	"net"
	"os"
	"path/filepath"
	"time"

	"google.golang.org/grpc/credentials"
)

// ServerCredentials loads a server key pair.
func ServerCredentials(certFile, keyFile string) (credentials.TransportCredentials, error) {
	cert, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return nil, fmt.Errorf("tlsutil: load server key pair: %w", err)
	}

	return credentials.NewTLS(&tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}), nil
}

// ClientCredentials trusts the CA in caFile, or the system pool when caFile is empty.
func ClientCredentials(caFile string) (credentials.TransportCredentials, error) {
	cfg := &tls.Config{MinVersion: tls.VersionTLS12}

	if caFile != "" {
		caPEM, err := os.ReadFile(caFile)
		if err != nil {
			return nil, fmt.Errorf("tlsutil: read CA file: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(caPEM) {
			return nil, fmt.Errorf("tlsutil: no certificates found in %s", caFile)
		}
		cfg.RootCAs = pool
	}

	return credentials.NewTLS(cfg), nil
}

// DevCertificates names the files written by GenerateDevCertificates.
type DevCertificates struct {
	CAFile   string
	CertFile string
	KeyFile  string
}

// GenerateDevCertificates writes a throwaway CA (ca.pem) and a server certificate for
// hosts signed by it (server.pem, server-key.pem) into outDir.
func GenerateDevCertificates(hosts []string, outDir string) (DevCertificates, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return DevCertificates{}, fmt.Errorf("tlsutil: mkdir %s: %w", outDir, err)
	}

	now := time.Now()
	caKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return DevCertificates{}, fmt.Errorf("tlsutil: generate CA key: %w", err)
	}
	caTemplate := &x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{Organization: []string{"botscore dev CA"}},
		NotBefore:             now.Add(-time.Minute),
		NotAfter:              now.Add(365 * 24 * time.Hour),
		KeyUsage:              x509.KeyUsageCertSign | x509.KeyUsageCRLSign,
		BasicConstraintsValid: true,
		IsCA:                  true,
	}
	caDER, err := x509.CreateCertificate(rand.Reader, caTemplate, caTemplate, &caKey.PublicKey, caKey)
	if err != nil {
		return DevCertificates{}, fmt.Errorf("tlsutil: create CA cert: %w", err)
	}
	caCert, err := x509.ParseCertificate(caDER)
	if err != nil {
		return DevCertificates{}, fmt.Errorf("tlsutil: parse CA cert: %w", err)
	}

	serverKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return DevCertificates{}, fmt.Errorf("tlsutil: generate server key: %w", err)
	}
	serverTemplate := &x509.Certificate{
		SerialNumber: big.NewInt(2),
		Subject:      pkix.Name{Organization: []string{"botscore dev"}},
		NotBefore:    now.Add(-time.Minute),
		NotAfter:     now.Add(90 * 24 * time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
	}
	for _, h := range hosts {
		if ip := net.ParseIP(h); ip != nil {
			serverTemplate.IPAddresses = append(serverTemplate.IPAddresses, ip)
		} else {
			serverTemplate.DNSNames = append(serverTemplate.DNSNames, h)
		}
	}
	serverDER, err := x509.CreateCertificate(rand.Reader, serverTemplate, caCert, &serverKey.PublicKey, caKey)
	if err != nil {
		return DevCertificates{}, fmt.Errorf("tlsutil: create server cert: %w", err)
	}
	serverKeyDER, err := x509.MarshalECPrivateKey(serverKey)
	if err != nil {
		return DevCertificates{}, fmt.Errorf("tlsutil: marshal server key: %w", err)
	}

	out := DevCertificates{
		CAFile:   filepath.Join(outDir, "ca.pem"),
		CertFile: filepath.Join(outDir, "server.pem"),
		KeyFile:  filepath.Join(outDir, "server-key.pem"),
	}
	for _, f := range []struct {
		path, blockType string
		der             []byte
	}{
		{out.CAFile, "CERTIFICATE", caDER},
		{out.CertFile, "CERTIFICATE", serverDER},
		{out.KeyFile, "EC PRIVATE KEY", serverKeyDER},
	} {
		if err := writePEM(f.path, f.blockType, f.der); err != nil {
			return DevCertificates{}, err
		}
	}
	return out, nil
}

func writePEM(path, blockType string, der []byte) error {
	data := pem.EncodeToMemory(&pem.Block{Type: blockType, Bytes: der})
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("tlsutil: write %s: %w", path, err)
	}
	return nil
}
