package destroy

import (
	"context"
	"errors"
	"sort"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/mock"

	"github.com/imamik/slsfw/internal/config"
	"github.com/imamik/slsfw/internal/provisioning"
	"github.com/imamik/slsfw/internal/state"
	testutil "github.com/imamik/slsfw/internal/testing"
)

var _ = Describe("Destroy Provisioner", func() {
	var (
		fixture *testutil.ComponentsFixture
		prior   *state.Record
		cfg     *config.Prepared
	)

	newContext := func() *provisioning.Context {
		return provisioning.NewContext(context.Background(), cfg, fixture.Components(), prior, nil)
	}

	BeforeEach(func() {
		fixture = testutil.NewComponentsFixture()
		cfg = &config.Prepared{Framework: "express"}
		prior = &state.Record{
			DeploymentID: "d-1",
			Framework:    "express",
			CNS:          []string{"example.com", "example.org"},
		}
	})

	It("is named Destroy", func() {
		Expect(NewProvisioner().Name()).To(Equal("Destroy"))
	})

	Context("when every component succeeds", func() {
		It("removes function, gateway and every recorded domain by remark", func() {
			var mu sync.Mutex
			var domains []string

			fixture.Function.On("RemoveFunction", mock.Anything,
				provisioning.RemoveRequest{FromClientRemark: "tencent-express"}).Return(nil).Once()
			fixture.Gateway.On("RemoveGateway", mock.Anything,
				provisioning.RemoveRequest{FromClientRemark: "tencent-express"}).Return(nil).Once()
			fixture.DNS.On("RemoveDNS", mock.Anything, mock.AnythingOfType("provisioning.RemoveRequest")).
				Run(func(args mock.Arguments) {
					req := args.Get(1).(provisioning.RemoveRequest)
					Expect(req.FromClientRemark).To(Equal("tencent-express"))
					mu.Lock()
					domains = append(domains, req.Domain)
					mu.Unlock()
				}).Return(nil)

			Expect(NewProvisioner().Provision(newContext())).To(Succeed())

			sort.Strings(domains)
			Expect(domains).To(Equal([]string{"example.com", "example.org"}))
			fixture.AssertExpectations(GinkgoT())
		})

		It("skips DNS when nothing was recorded", func() {
			prior = &state.Record{}
			fixture.SuccessfulRemove()

			Expect(NewProvisioner().Provision(newContext())).To(Succeed())
			fixture.DNS.AssertNotCalled(GinkgoT(), "RemoveDNS", mock.Anything, mock.Anything)
		})

		It("falls back to the recorded framework", func() {
			cfg = &config.Prepared{}
			prior.Framework = "koa"
			prior.CNS = nil
			fixture.Function.On("RemoveFunction", mock.Anything,
				provisioning.RemoveRequest{FromClientRemark: "tencent-koa"}).Return(nil)
			fixture.Gateway.On("RemoveGateway", mock.Anything,
				provisioning.RemoveRequest{FromClientRemark: "tencent-koa"}).Return(nil)

			Expect(NewProvisioner().Provision(newContext())).To(Succeed())
			fixture.AssertExpectations(GinkgoT())
		})
	})

	Context("when removal fails", func() {
		It("stops before the gateway if the function cannot be removed", func() {
			fixture.Function.On("RemoveFunction", mock.Anything, mock.Anything).Return(errors.New("in use"))

			err := NewProvisioner().Provision(newContext())
			Expect(err).To(MatchError(ContainSubstring("failed to remove function: in use")))
			fixture.Gateway.AssertNotCalled(GinkgoT(), "RemoveGateway", mock.Anything, mock.Anything)
		})

		It("still removes the other domains and reports the failing one", func() {
			fixture.Function.On("RemoveFunction", mock.Anything, mock.Anything).Return(nil)
			fixture.Gateway.On("RemoveGateway", mock.Anything, mock.Anything).Return(nil)
			fixture.DNS.On("RemoveDNS", mock.Anything, mock.MatchedBy(func(r provisioning.RemoveRequest) bool {
				return r.Domain == "example.com"
			})).Return(errors.New("zone locked"))
			fixture.DNS.On("RemoveDNS", mock.Anything, mock.MatchedBy(func(r provisioning.RemoveRequest) bool {
				return r.Domain == "example.org"
			})).Return(nil)

			err := NewProvisioner().Provision(newContext())
			Expect(err).To(MatchError(ContainSubstring("example.com: zone locked")))
			fixture.DNS.AssertNumberOfCalls(GinkgoT(), "RemoveDNS", 2)
		})

		It("refuses to run without a framework", func() {
			cfg = &config.Prepared{}
			prior = nil

			err := NewProvisioner().Provision(newContext())
			Expect(err).To(MatchError(ContainSubstring("no framework")))
		})
	})
})
