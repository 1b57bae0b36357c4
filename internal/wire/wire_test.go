package wire

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"

	"github.com/mcoot/pairings-web/internal/identity"
)

func TestSchemaLinksEveryRecord(t *testing.T) {
	for _, md := range []struct {
		name string
		got  interface{ IsPlaceholder() bool }
	}{
		{"Hmac", Hmac},
		{"Identification", Identification},
		{"Tournament", Tournament},
		{"Player", Player},
		{"Game", Game},
		{"GameList", GameList},
		{"PlayerList", PlayerList},
		{"Result", Result},
		{"Service", Service},
	} {
		require.NotNil(t, md.got, md.name)
		assert.False(t, md.got.IsPlaceholder(), md.name)
	}

	assert.Equal(t, GameName, Game.FullName())
	assert.Equal(t, PlayerName, Game.Fields().ByName(FieldBlack).Message().FullName())
}

func TestEveryMethodHasASignature(t *testing.T) {
	methods := []string{
		MethodCreateTournament, MethodGetTournament, MethodUpdateTournament,
		MethodGetGames, MethodAdvancePairing, MethodCreatePlayer, MethodGetPlayer,
		MethodUpdatePlayer, MethodGetPlayers, MethodGetPlayerGames, MethodGetGame,
		MethodRegisterResult,
	}
	assert.Equal(t, Service.Methods().Len(), len(methods))

	for _, m := range methods {
		_, _, ok := Signature(m)
		assert.True(t, ok, m)
	}

	in, out, ok := Signature(MethodAdvancePairing)
	require.True(t, ok)
	assert.Equal(t, IdentificationName, in.FullName())
	assert.Equal(t, GameListName, out.FullName())

	_, _, ok = Signature("/pairings.PairingServer/Nope")
	assert.False(t, ok)
}

func TestScalarPresenceIsExplicit(t *testing.T) {
	p := New(Player)
	assert.False(t, Has(p, FieldWithdrawn))
	assert.False(t, Bool(p, FieldWithdrawn))

	Set(p, FieldWithdrawn, false)
	assert.True(t, Has(p, FieldWithdrawn))
	assert.False(t, Bool(p, FieldWithdrawn))

	data, err := proto.Marshal(p)
	require.NoError(t, err)

	decoded := New(Player)
	require.NoError(t, proto.Unmarshal(data, decoded))
	assert.True(t, Has(decoded, FieldWithdrawn))
	assert.False(t, Has(decoded, FieldExpelled))
}

func TestIdentificationConversion(t *testing.T) {
	u := uuid.New()
	digest := bytes.Repeat([]byte{3}, 32)
	signed, err := identity.Mint(u[:], identity.AlgorithmSHA256, digest)
	require.NoError(t, err)

	rec := NewIdentification(signed)
	assert.True(t, Has(rec, FieldHmac))

	back, err := IdentityOf(rec)
	require.NoError(t, err)
	assert.True(t, back.Equal(signed))

	anon := NewIdentification(signed.Anonymous())
	assert.False(t, Has(anon, FieldHmac))
	back, err = IdentityOf(anon)
	require.NoError(t, err)
	assert.False(t, back.HasProof())
}

func TestIdentityOfRejectsBrokenRecords(t *testing.T) {
	rec := New(Identification)
	Set(rec, FieldUUID, []byte{1, 2, 3})
	_, err := IdentityOf(rec)
	assert.Error(t, err)

	u := uuid.New()
	rec = New(Identification)
	Set(rec, FieldUUID, u[:])
	h := New(Hmac)
	Set(h, FieldAlgorithm, identity.AlgorithmSHA256)
	Set(rec, FieldHmac, h)
	_, err = IdentityOf(rec)
	assert.Error(t, err, "hmac without digest")

	_, err = IdentityOf(New(Tournament))
	assert.Error(t, err)
}

func TestListsKeepOrder(t *testing.T) {
	list := New(PlayerList)
	for _, name := range []string{"c", "a", "b"} {
		p := New(Player)
		Set(p, FieldName, name)
		Append(list, FieldPlayers, p)
	}

	var names []string
	for _, p := range Items(list, FieldPlayers) {
		names = append(names, String(p, FieldName))
	}
	assert.Equal(t, []string{"c", "a", "b"}, names)
}

func TestResults(t *testing.T) {
	assert.Equal(t, "WHITE_WIN", ResultWhiteWin.String())
	assert.Equal(t, Result.Values().Len(), len(Results()))

	r, ok := ParseResult("DRAW")
	require.True(t, ok)
	assert.Equal(t, ResultDraw, r)

	_, ok = ParseResult("RESIGNED")
	assert.False(t, ok)
	assert.False(t, GameResult(42).Valid())

	g := New(Game)
	Set(g, FieldResult, ResultBlackForfeit)
	assert.Equal(t, ResultBlackForfeit, Enum(g, FieldResult))
}
