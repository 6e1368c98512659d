// Copyright 2017 Pilosa Corp.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions
// are met:
//
// 1. Redistributions of source code must retain the above copyright
// notice, this list of conditions and the following disclaimer.
//
// 2. Redistributions in binary form must reproduce the above copyright
// notice, this list of conditions and the following disclaimer in the
// documentation and/or other materials provided with the distribution.
//
// 3. Neither the name of the copyright holder nor the names of its
// contributors may be used to endorse or promote products derived
// from this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND
// CONTRIBUTORS "AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES,
// INCLUDING, BUT NOT LIMITED TO, THE IMPLIED WARRANTIES OF
// MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
// DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR
// CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
// SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING,
// BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
// SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS
// INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY,
// WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING
// NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
// OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH
// DAMAGE.

package launchdash_test

import (
	"crypto/tls"
	"path/filepath"
	"testing"

	"github.com/pilosa/launchdash"
	"github.com/pilosa/launchdash/test"
)

func TestGetTLSConfig(t *testing.T) {
	conf, err := launchdash.GetTLSConfig(launchdash.TLSConfig{}, nil)
	test.ErrNil(t, err, "empty config")
	if conf != nil {
		t.Fatalf("expected nil tls config without a certificate, got %v", conf)
	}

	cert, key := test.MustCert(t)
	conf, err = launchdash.GetTLSConfig(launchdash.TLSConfig{
		CertificatePath:          cert,
		CertificateKeyPath:       key,
		CACertPath:               cert,
		EnableClientVerification: true,
	}, launchdash.NopLogger{})
	test.ErrNil(t, err, "getting tls config")
	test.MustBe(t, conf.MinVersion, uint16(tls.VersionTLS12))
	test.MustBe(t, conf.ClientAuth, tls.RequireAndVerifyClientCert)
	if conf.RootCAs == nil || conf.ClientCAs == nil {
		t.Fatalf("expected CA pools to be set")
	}
	got, err := conf.GetCertificate(nil)
	test.ErrNil(t, err, "getting certificate")
	if got == nil || len(got.Certificate) != 1 {
		t.Fatalf("unexpected certificate: %v", got)
	}
}

func TestGetTLSConfigErrors(t *testing.T) {
	cert, key := test.MustCert(t)
	missing := filepath.Join(test.MustTempDir(t), "missing.pem")
	notPEM := test.MustTempFile(t, "not a certificate")
	tests := []launchdash.TLSConfig{
		{CertificatePath: missing, CertificateKeyPath: key},
		{CertificatePath: cert, CertificateKeyPath: cert},
		{CertificatePath: cert, CertificateKeyPath: key, CACertPath: missing},
		{CertificatePath: cert, CertificateKeyPath: key, CACertPath: notPEM},
	}
	for i, tst := range tests {
		if _, err := launchdash.GetTLSConfig(tst, nil); err == nil {
			t.Errorf("test %d: expected error for %+v", i, tst)
		}
	}
}
