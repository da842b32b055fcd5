package relation

import (
	"sync"
	"testing"

	"github.com/revelaction/binrel/entity"
	"github.com/revelaction/binrel/predicate"
	"github.com/stretchr/testify/assert"
)

var (
	merkel = entity.Mention{Start: 1, Name: "Merkel", ExternalID: "http://de.wikipedia.org/wiki/Angela_Merkel", Type: "/person/politician", Class: entity.Named}
	ddr    = entity.Mention{Start: 4, Name: "DDR", ExternalID: "http://de.wikipedia.org/wiki/Deutsche_Demokratische_Republik", Type: "/location/country", Class: entity.Named}
	firma  = entity.Mention{Start: 6, Name: "die Firma", ExternalID: "notInWiki", Type: "ORGANIZATION", Class: entity.Common}
)

func TestAssembleActive(t *testing.T) {
	a := NewAssembler(nil)
	r := a.Assemble(merkel, ddr, predicate.Result{Lemma: "besuchen", Index: 2}, false)

	assert.Equal(t, "(besuchen.1,besuchen.2)#person#location::Angela_Merkel::Deutsche_Demokratische_Republik|||(passive: False)", r.Display)
	assert.Equal(t, "((besuchen.1,besuchen.2)::Angela_Merkel::Deutsche_Demokratische_Republik::#person::#location::EE::0::2)", r.Record())
	assert.Equal(t, []string{"#location", "#person"}, a.Types().Sorted())
}

func TestAssemblePassiveSwaps(t *testing.T) {
	a := NewAssembler(nil)
	// DDR was the passive subject, Merkel the agent
	r := a.Assemble(ddr, merkel, predicate.Result{Lemma: "besuchen.von", Index: 6, Passive: true}, false)

	assert.Equal(t, merkel, r.Subject)
	assert.Equal(t, ddr, r.Object)
	assert.Equal(t, "(besuchen.von.1,besuchen.von.2)#person#location::Angela_Merkel::Deutsche_Demokratische_Republik|||(passive: True)", r.Display)
	assert.Equal(t, "((besuchen.1,besuchen.von.2)::Angela_Merkel::Deutsche_Demokratische_Republik::#person::#location::EE::0::6)", r.Record())
}

func TestAssembleNegatedCommon(t *testing.T) {
	a := NewAssembler(nil)
	r := a.Assemble(merkel, firma, predicate.Result{Lemma: "gründen", Index: 3}, true)

	assert.Equal(t, "NEG__(gründen.1,gründen.2)#person#ORGANIZATION::Angela_Merkel::die_Firma|||(passive: False)", r.String())
	assert.Equal(t, "(NEG__(gründen.1,gründen.2)::Angela_Merkel::die_Firma::#person::#ORGANIZATION::EG::0::3)", r.Record())
}

func TestTypeSetWriteOnce(t *testing.T) {
	s := NewTypeSet()
	assert.True(t, s.Add("#person"))
	assert.False(t, s.Add("#person"))
	assert.True(t, s.Has("#person"))
	assert.Equal(t, 1, s.Len())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Add("#location")
			s.Add("#person")
		}()
	}
	wg.Wait()
	assert.Equal(t, []string{"#location", "#person"}, s.Sorted())

	other := NewTypeSet()
	other.Add("#thing")
	other.Add("#person")
	s.Merge(other)
	assert.Equal(t, []string{"#location", "#person", "#thing"}, s.Sorted())
}
