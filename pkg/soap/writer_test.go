package soap

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteResponse(t *testing.T) {
	body := `
        <tds:GetDeviceInformationResponse>
            <tds:Manufacturer>ONVIF Server</tds:Manufacturer>
        </tds:GetDeviceInformationResponse>`
	out := WriteResponse(body)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))

	resp := FindElement(doc.Root(), NsDevice, "GetDeviceInformationResponse")
	require.NotNil(t, resp)
	mfr := FindElement(resp, NsDevice, "Manufacturer")
	require.NotNil(t, mfr)
	assert.Equal(t, "ONVIF Server", mfr.Text())
}

func TestWriteFault(t *testing.T) {
	out := WriteFault("Sender", "Authentication failed")

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))

	fault := FindElement(doc.Root(), NsSOAPEnv, "Fault")
	require.NotNil(t, fault)

	value := FindElement(fault, NsSOAPEnv, "Value")
	require.NotNil(t, value)
	assert.Equal(t, "soap:Sender", value.Text())

	text := FindElement(fault, NsSOAPEnv, "Text")
	require.NotNil(t, text)
	assert.Equal(t, "Authentication failed", text.Text())
	assert.Equal(t, "en", text.SelectAttrValue("xml:lang", ""))
}
