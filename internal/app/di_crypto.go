package app

import (
	cryptoService "github.com/inkvault/inkvault/internal/crypto/service"
	documentUseCase "github.com/inkvault/inkvault/internal/document/usecase"
)

// AEADManager returns the AEAD cipher factory.
func (c *Container) AEADManager() cryptoService.AEADManager {
	c.aeadManagerInit.Do(func() {
		c.aeadManager = cryptoService.NewAEADManager()
	})
	return c.aeadManager
}

// KeyDeriver returns the password key deriver.
func (c *Container) KeyDeriver() cryptoService.KeyDeriver {
	c.keyDeriverInit.Do(func() {
		c.keyDeriver = cryptoService.NewKeyDeriver()
	})
	return c.keyDeriver
}

// CryptoWorkflow returns the document open/save workflow.
func (c *Container) CryptoWorkflow() documentUseCase.CryptoWorkflow {
	c.cryptoWorkflowInit.Do(func() {
		c.cryptoWorkflow = documentUseCase.NewCryptoWorkflow(c.AEADManager(), c.KeyDeriver())
	})
	return c.cryptoWorkflow
}
