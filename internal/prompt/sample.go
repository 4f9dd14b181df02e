package prompt

// SampleSubmission is a complete example answer block, in question order.
const SampleSubmission = `10/07/2024 10:30:15
João da Silva
35
Masculino
1.80m
95kg
80kg
Nenhuma
Não
Sim, com nutricionista
Considero regular, com muitos industrializados
3
Lactose
Cerca de 1.5L
Sedentário
Caminhada e musculação
6 horas
Falta de tempo e organização
Melhorar a saúde e disposição
Plano detalhado por e-mail
Alto
Churrasco e massas
Doces e refrigerantes
Nenhuma
Sim, halteres e elásticos
(11) 98765-4321`
